package awgrab

import (
	"path"
	"strconv"
	"strings"
)

// Sidecar renders the fixed-format metadata report packed next to each
// image in an archive. Line order is part of the format.
func Sidecar(m *FlightMetadata) string {
	lines := []string{
		"File: " + m.FileName,
		"DateTimeOriginal: " + m.DateTime,
		"Pitch: " + angle(m.Pitch),
		"Roll: " + angle(m.Roll),
		"Yaw: " + angle(m.Yaw),
		"",
		"Location:",
		"Altitude: " + num(m.GPSAltitude) + " m",
		"Latitude: " + num(m.GPSLatitude) + " deg",
		"Longitude: " + num(m.GPSLongitude) + " deg",
	}

	if m.UserComment != "" {
		lines = append(lines, "", "UserComment:", m.UserComment)
	}

	return strings.Join(lines, "\n")
}

// SidecarName returns the sidecar filename for an image, e.g.
// "IMG_0001.jpg" -> "IMG_0001_meta.txt".
func SidecarName(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName)) + "_meta.txt"
}

func angle(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return num(*v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
