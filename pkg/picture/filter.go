package picture

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultFilter is the resampling filter used when none is configured:
// Catmull-Rom, a sharp cubic filter.
var DefaultFilter = imaging.CatmullRom

// NearestNeighbor resampling. imaging's own NearestNeighbor is the zero-value
// filter; a negative support keeps an explicitly requested nearest filter
// distinguishable from an unset one (imaging treats any non-positive support
// as nearest neighbor).
var NearestNeighbor = imaging.ResampleFilter{Support: -1}

// filters maps flag-friendly names to resampling filters.
var filters = map[string]imaging.ResampleFilter{
	"nearest":    NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"cubic":      imaging.CatmullRom,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// ParseFilter resolves a filter name from the CLI or API. An empty name
// selects DefaultFilter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		return DefaultFilter, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resize filter %q (must be one of: nearest, box, linear, cubic, lanczos)", name)
	}
	return f, nil
}
