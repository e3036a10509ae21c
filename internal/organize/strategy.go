package organize

import (
	"context"
	"fmt"

	"github.com/clineup/clineup/internal/config"
	ioutils "github.com/clineup/clineup/internal/io"
)

// Placer puts src at dst. dst's parent directory already exists.
type Placer func(ctx context.Context, src, dst string) error

// PlacerFor returns the Placer of a strategy name.
func PlacerFor(strategy string) (Placer, error) {
	switch strategy {
	case config.StrategyCopy, "":
		return ioutils.CopyFile, nil
	case config.StrategyMove:
		return ioutils.MoveFile, nil
	case config.StrategySymlink:
		return func(_ context.Context, src, dst string) error {
			return ioutils.SymlinkFile(src, dst)
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
