package imaging

import (
	"bytes"
	"log/slog"

	"github.com/cmxu/geoimages/internal/models"
	"github.com/rwcarlsen/goexif/exif"
)

// LocationFromEXIF reads the GPS position embedded in a photo's EXIF data
func LocationFromEXIF(data []byte) (models.Location, bool) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Debug("No EXIF data", "err", err)
		return models.Location{}, false
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		slog.Debug("No GPS in EXIF", "err", err)
		return models.Location{}, false
	}

	loc := models.Location{Lat: lat, Lon: lon}
	return loc, loc.Resolvable()
}
