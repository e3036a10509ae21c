package formatter

import (
	"context"
	"errors"
	"strings"

	"github.com/clineup/clineup/internal/geocode"
	"github.com/clineup/clineup/internal/logging"
	"github.com/clineup/clineup/internal/media"
	"github.com/clineup/clineup/internal/placeholder"
	"github.com/sirupsen/logrus"
)

// Locator resolves GPS coordinates to a place. *geocache.Cache implements it.
type Locator interface {
	Resolve(ctx context.Context, lat, lon float64) (geocode.Location, error)
}

// Options holds the collaborators of a Formatter. Zero values select the
// defaults noted on each field.
type Options struct {
	// Opener reads embedded metadata. Defaults to media.NewReader().
	Opener media.Opener

	// Stat reads filesystem timestamps. Defaults to media.StatTimes.
	Stat func(path string) (media.FileTimes, error)

	// Locator resolves location placeholders. Without it they fail.
	Locator Locator

	Logger logrus.FieldLogger
}

// Formatter renders one parsed template for many files.
type Formatter struct {
	tmpl    *placeholder.Template
	needs   placeholder.Requirements
	opener  media.Opener
	stat    func(string) (media.FileTimes, error)
	locator Locator
	log     logrus.FieldLogger
}

// New parses template and returns a Formatter for it.
func New(template string, opts Options) *Formatter {
	f := &Formatter{
		tmpl:    placeholder.Parse(template),
		opener:  opts.Opener,
		stat:    opts.Stat,
		locator: opts.Locator,
		log:     logging.OrDiscard(opts.Logger),
	}
	f.needs = f.tmpl.Needs()
	if f.opener == nil {
		f.opener = media.NewReader()
	}
	if f.stat == nil {
		f.stat = media.StatTimes
	}

	for _, g := range f.tmpl.Groups() {
		for _, alt := range g.Alternatives {
			if alt.Kind == placeholder.KindUnknown {
				f.log.WithField("placeholder", alt.Text).Warn("unknown placeholder, it will never resolve")
			}
		}
	}
	return f
}

// Template returns the parsed template.
func (f *Formatter) Template() *placeholder.Template {
	return f.tmpl
}

// Needs reports which providers the template uses.
func (f *Formatter) Needs() placeholder.Requirements {
	return f.needs
}

// Format renders the template for the file at path.
//
// Format fails only with a *FileError, when some group cannot resolve
// because every provider it depends on failed to build.
func (f *Formatter) Format(ctx context.Context, path string) (string, error) {
	fc := &fileContext{ctx: ctx, path: path, f: f}
	values := make(map[*placeholder.Group]string, len(f.tmpl.Groups()))

	for _, g := range f.tmpl.Groups() {
		v, err := f.resolveGroup(fc, g)
		if err != nil {
			return "", &FileError{Path: path, Group: g.Raw, Err: err}
		}
		values[g] = v
	}

	return f.tmpl.Reconstruct(func(g *placeholder.Group) string {
		return values[g]
	}), nil
}

// Format renders template for the file at path with a one-off Formatter.
func Format(ctx context.Context, template, path string, opts Options) (string, error) {
	return New(template, opts).Format(ctx, path)
}

// resolveGroup returns the first alternative that resolves. When none does
// it returns the fallback label, or an error when every registered
// alternative failed because its provider could not be built.
func (f *Formatter) resolveGroup(fc *fileContext, g *placeholder.Group) (string, error) {
	var (
		errs        []error
		allProvider = true
		registered  = 0
	)

	for _, alt := range g.Alternatives {
		v, err := resolveAlternative(fc, alt)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)

		if alt.Kind == placeholder.KindUnknown {
			continue
		}
		registered++
		var pe *ProviderError
		if !errors.As(err, &pe) {
			allProvider = false
		}
	}

	err := errors.Join(errs...)
	if registered > 0 && allProvider {
		return "", err
	}

	label := fallbackLabel(g)
	f.log.WithFields(logrus.Fields{
		"file":  fc.path,
		"group": g.Raw,
		"value": label,
	}).WithError(err).Debug("no alternative resolved")
	return label, nil
}

func resolveAlternative(fc *fileContext, alt placeholder.Alternative) (string, error) {
	switch alt.Kind {
	case placeholder.KindLiteral:
		return alt.Text, nil
	case placeholder.KindUnknown:
		return "", ErrUnknownPlaceholder
	}
	resolve, ok := resolvers[alt.Kind]
	if !ok {
		return "", ErrUnknownPlaceholder
	}
	return resolve(fc)
}

func fallbackLabel(g *placeholder.Group) string {
	alt := g.Fallback()
	if alt.Kind == placeholder.KindUnknown || alt.Kind == placeholder.KindLiteral {
		return "Unknown " + strings.TrimPrefix(alt.Text, "%")
	}
	return "Unknown " + alt.Kind.Label()
}
