package annotate

import (
	"strconv"
	"strings"
)

// DefaultFormat is the label template used when none is configured.
const DefaultFormat = "{n}."

// Sequence generates default label text for consecutive panels. The template
// may contain "{n}" for the 1-based panel number, "{a}" for a lowercase
// letter (a, b, …, z, aa, ab, …) and "{A}" for the uppercase variant.
type Sequence struct {
	format string
	index  int
}

// NewSequence creates a sequence over the given template, falling back to
// DefaultFormat when the template is empty.
func NewSequence(format string) *Sequence {
	if format == "" {
		format = DefaultFormat
	}
	return &Sequence{format: format}
}

// Next returns the label text for the next panel.
func (s *Sequence) Next() string {
	i := s.index
	s.index++

	out := strings.ReplaceAll(s.format, "{n}", strconv.Itoa(i+1))
	out = strings.ReplaceAll(out, "{a}", letters(i))
	out = strings.ReplaceAll(out, "{A}", strings.ToUpper(letters(i)))
	return out
}

// letters converts a zero-based index to spreadsheet-style letters.
func letters(i int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return string(b)
}
