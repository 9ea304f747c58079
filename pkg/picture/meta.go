package picture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Metadata holds the ancillary information panelize reads from a PNG file.
type Metadata struct {
	Path     string
	Width    int
	Height   int
	DPI      int      // 0 when the file carries no physical size
	Comments []string // tEXt/iTXt entries as "keyword: text"
}

// metersPerInch converts the pHYs pixels-per-metre unit to DPI.
const metersPerInch = 39.3701

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ReadMetadata scans the PNG chunk stream at path for dimensions, physical
// resolution, and text comments. Only PNG is supported; other formats return
// an error.
func ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	meta := Metadata{Path: path}

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(f, sig); err != nil || !bytes.Equal(sig, pngSignature) {
		return Metadata{}, fmt.Errorf("%s: not a PNG file", path)
	}

	for {
		var header [8]byte
		if _, err := io.ReadFull(f, header[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return Metadata{}, fmt.Errorf("read %s: %w", path, err)
		}
		length := binary.BigEndian.Uint32(header[:4])
		chunkType := string(header[4:8])

		if chunkType == "IEND" {
			break
		}

		switch chunkType {
		case "IHDR", "pHYs", "tEXt", "iTXt":
			data := make([]byte, length)
			if _, err := io.ReadFull(f, data); err != nil {
				return Metadata{}, fmt.Errorf("read %s chunk in %s: %w", chunkType, path, err)
			}
			parseChunk(&meta, chunkType, data)
			// Skip the CRC.
			if _, err := f.Seek(4, io.SeekCurrent); err != nil {
				return Metadata{}, err
			}
		default:
			if _, err := f.Seek(int64(length)+4, io.SeekCurrent); err != nil {
				return Metadata{}, err
			}
		}
	}
	return meta, nil
}

func parseChunk(meta *Metadata, chunkType string, data []byte) {
	switch chunkType {
	case "IHDR":
		if len(data) >= 8 {
			meta.Width = int(binary.BigEndian.Uint32(data[:4]))
			meta.Height = int(binary.BigEndian.Uint32(data[4:8]))
		}
	case "pHYs":
		// 4 bytes x pixels per unit, 4 bytes y, 1 byte unit specifier
		// (1 = metre). Aspect-ratio-only entries (unit 0) carry no DPI.
		if len(data) == 9 && data[8] == 1 {
			perMetre := binary.BigEndian.Uint32(data[:4])
			meta.DPI = int(math.Floor(float64(perMetre)/metersPerInch + 0.5))
		}
	case "tEXt":
		if i := bytes.IndexByte(data, 0); i >= 0 {
			meta.Comments = append(meta.Comments,
				fmt.Sprintf("%s: %s", data[:i], data[i+1:]))
		}
	case "iTXt":
		// keyword \0, compression flag byte, compression method byte,
		// language \0, translated keyword \0, text
		i := bytes.IndexByte(data, 0)
		if i < 0 || len(data) < i+3 || data[i+1] != 0 {
			return // missing header or compressed payload
		}
		parts := bytes.SplitN(data[i+3:], []byte{0}, 3)
		if len(parts) == 3 {
			meta.Comments = append(meta.Comments,
				fmt.Sprintf("%s: %s", data[:i], parts[2]))
		}
	}
}

// String formats the metadata for terminal output.
func (m Metadata) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %dx%d", m.Path, m.Width, m.Height)
	if m.DPI > 0 {
		fmt.Fprintf(&b, " %ddpi", m.DPI)
	}
	for _, c := range m.Comments {
		fmt.Fprintf(&b, "\n  %s", c)
	}
	return b.String()
}
