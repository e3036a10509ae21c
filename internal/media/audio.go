package media

import (
	"fmt"
	"time"

	"github.com/bogem/id3v2"
)

// audioMetadata carries what an ID3 tag knows. Only the capture date maps
// onto template fields.
type audioMetadata struct {
	recorded string
}

func openAudio(path string) (*audioMetadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Recording time", "Year"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedMedia, path, err)
	}
	defer tag.Close()

	m := &audioMetadata{}
	if tf := tag.GetTextFrame(tag.CommonID("Recording time")); tf.Text != "" {
		m.recorded = tf.Text
	} else {
		m.recorded = tag.Year()
	}
	return m, nil
}

func (m *audioMetadata) CaptureDate() (time.Time, error) {
	if m.recorded == "" {
		return time.Time{}, missing("capture date")
	}
	t, err := parseDate(m.recorded)
	if err != nil {
		return time.Time{}, &FieldError{Field: "capture date", Err: err}
	}
	return t, nil
}

func (m *audioMetadata) Width() (int, error) { return 0, missing("width") }
func (m *audioMetadata) Height() (int, error) { return 0, missing("height") }
func (m *audioMetadata) CameraModel() (string, error) { return "", missing("camera model") }
func (m *audioMetadata) CameraBrand() (string, error) { return "", missing("camera brand") }
func (m *audioMetadata) Latitude() (float64, error) { return 0, missing("latitude") }
func (m *audioMetadata) Longitude() (float64, error) { return 0, missing("longitude") }
