package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/jmellor/panelize/pkg/picture"
)

// Default values shared by the CLI and the HTTP service.
const (
	// DefaultWidth is the output width in pixels.
	DefaultWidth = 1200

	// DefaultFormat is the output encoding.
	DefaultFormat = FormatPNG

	// DefaultPlaceholderSize is the edge length of blank regions substituted
	// for missing panel images.
	DefaultPlaceholderSize = 500
)

// Output format names.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
)

// encodings maps format names (including common aliases) to image encoders.
var encodings = map[string]imaging.Format{
	FormatPNG:  imaging.PNG,
	FormatJPEG: imaging.JPEG,
	"jpg":      imaging.JPEG,
	FormatTIFF: imaging.TIFF,
	"tif":      imaging.TIFF,
	FormatBMP:  imaging.BMP,
}

// contentTypes maps format names to HTTP content types.
var contentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	"jpg":      "image/jpeg",
	FormatTIFF: "image/tiff",
	"tif":      "image/tiff",
	FormatBMP:  "image/bmp",
}

// ValidateFormat checks that an output format is encodable.
func ValidateFormat(format string) error {
	if _, ok := encodings[format]; !ok {
		return fmt.Errorf("invalid format: %q (must be one of: png, jpeg, tiff, bmp)", format)
	}
	return nil
}

// ContentType returns the HTTP content type for an output format, empty for
// unknown formats.
func ContentType(format string) string { return contentTypes[format] }

// Options configures one composition run. The struct serializes to JSON for
// API requests; every serialized field participates in the artifact cache
// key, so any change re-renders.
type Options struct {
	// ConfigFormat names the description format, "yaml" or "toml". Empty
	// means YAML.
	ConfigFormat string `json:"config_format,omitempty"`

	// BaseDir resolves relative panel paths in the description.
	BaseDir string `json:"base_dir,omitempty"`

	// Width is the output width in pixels.
	Width int `json:"width,omitempty"`

	// Format is the output encoding (png, jpeg, tiff, bmp).
	Format string `json:"format,omitempty"`

	// Dry renders an outline sketch instead of composing panel pixels.
	Dry bool `json:"dry,omitempty"`

	// Filter names the resampling filter (see picture.ParseFilter).
	Filter string `json:"filter,omitempty"`

	// PlaceholderWidth and PlaceholderHeight size blank stand-ins for
	// missing panels.
	PlaceholderWidth  int `json:"placeholder_width,omitempty"`
	PlaceholderHeight int `json:"placeholder_height,omitempty"`

	// Strict fails the run instead of substituting placeholders.
	Strict bool `json:"strict,omitempty"`

	// LabelFormat enables generated panel labels ("{n}.", "{a})", …).
	LabelFormat string `json:"label_format,omitempty"`

	// Refresh bypasses the artifact cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is a runtime option, not serialized.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	switch o.ConfigFormat {
	case "", "yaml", "yml", "toml":
	default:
		return fmt.Errorf("invalid config_format: %q (must be yaml or toml)", o.ConfigFormat)
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Width < 0 {
		return fmt.Errorf("width must be positive, got %d", o.Width)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if _, err := picture.ParseFilter(o.Filter); err != nil {
		return err
	}
	if o.PlaceholderWidth == 0 {
		o.PlaceholderWidth = DefaultPlaceholderSize
	}
	if o.PlaceholderHeight == 0 {
		o.PlaceholderHeight = DefaultPlaceholderSize
	}
	if o.PlaceholderWidth < 0 || o.PlaceholderHeight < 0 {
		return fmt.Errorf("placeholder size must be positive, got %dx%d", o.PlaceholderWidth, o.PlaceholderHeight)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	o.validated = true
	return nil
}
