package imaging

import (
	"encoding/binary"
	"math"
	"testing"
)

// withGPSExif returns jpegData with an APP1 segment carrying GPS tags.
// The third value of lat and lon is seconds in hundredths.
func withGPSExif(jpegData []byte, latRef string, lat [3]uint32, lonRef string, lon [3]uint32) []byte {
	le := binary.LittleEndian
	tiff := make([]byte, 128)
	copy(tiff, "II")
	le.PutUint16(tiff[2:], 42)
	le.PutUint32(tiff[4:], 8)

	entry := func(off int, tag, typ uint16, count, value uint32) {
		le.PutUint16(tiff[off:], tag)
		le.PutUint16(tiff[off+2:], typ)
		le.PutUint32(tiff[off+4:], count)
		le.PutUint32(tiff[off+8:], value)
	}

	// IFD0 holds only the GPS IFD pointer
	le.PutUint16(tiff[8:], 1)
	entry(10, 0x8825, 4, 1, 26)

	// GPS IFD at 26, rationals at 80 and 104
	le.PutUint16(tiff[26:], 4)
	entry(28, 0x0001, 2, 2, uint32(latRef[0]))
	entry(40, 0x0002, 5, 3, 80)
	entry(52, 0x0003, 2, 2, uint32(lonRef[0]))
	entry(64, 0x0004, 5, 3, 104)

	for i, v := range append(lat[:], lon[:]...) {
		den := uint32(1)
		if i%3 == 2 {
			den = 100
		}
		le.PutUint32(tiff[80+i*8:], v)
		le.PutUint32(tiff[84+i*8:], den)
	}

	seg := []byte{0xFF, 0xE1, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(2+6+len(tiff)))
	seg = append(seg, "Exif\x00\x00"...)
	seg = append(seg, tiff...)

	out := append([]byte{}, jpegData[:2]...)
	out = append(out, seg...)
	return append(out, jpegData[2:]...)
}

func TestLocationFromEXIF(t *testing.T) {
	tests := []struct {
		name   string
		latRef string
		lonRef string
		lat    float64
		lon    float64
	}{
		{name: "north east", latRef: "N", lonRef: "E", lat: 43.5083, lon: 16.44},
		{name: "south west", latRef: "S", lonRef: "W", lat: -43.5083, lon: -16.44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := withGPSExif(encodeJPEG(t, 4, 4), tt.latRef, [3]uint32{43, 30, 3000}, tt.lonRef, [3]uint32{16, 26, 2400})

			loc, ok := LocationFromEXIF(data)
			if !ok {
				t.Fatal("Expected a location from EXIF")
			}
			if math.Abs(loc.Lat-tt.lat) > 0.0005 || math.Abs(loc.Lon-tt.lon) > 0.0005 {
				t.Errorf("Expected %f,%f, got %f,%f", tt.lat, tt.lon, loc.Lat, loc.Lon)
			}
			if ext := FileExtension(data, "", ""); ext != "jpg" {
				t.Errorf("Expected jpg for EXIF tagged image, got %s", ext)
			}
		})
	}
}

func TestLocationFromEXIF_ZeroIsUnresolvable(t *testing.T) {
	data := withGPSExif(encodeJPEG(t, 4, 4), "N", [3]uint32{0, 0, 0}, "E", [3]uint32{0, 0, 0})

	if _, ok := LocationFromEXIF(data); ok {
		t.Error("Expected 0,0 EXIF position to be rejected")
	}
}
