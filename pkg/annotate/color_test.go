package annotate

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"", color.Black, false},
		{"black", color.Black, false},
		{"RED", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"#333333", color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false},
		{"#f0a", color.NRGBA{R: 0xff, G: 0x00, B: 0xaa, A: 0xff}, false},
		{"333333", color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false},
		{"#12345", nil, true},
		{"#zzzzzz", nil, true},
		{"chartreuse", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
