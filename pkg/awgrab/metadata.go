package awgrab

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// FlightMetadata is the per-photo flight record pulled out of EXIF. The
// angle pointers stay nil when the user comment carries no matching field;
// they are never coerced to zero.
type FlightMetadata struct {
	FileName string
	DateTime string

	GPSLatitude  float64
	GPSLongitude float64
	GPSAltitude  float64

	Pitch *float64
	Roll  *float64
	Yaw   *float64

	UserComment string
}

// MetadataReader reads the flight metadata of a staged image file.
type MetadataReader interface {
	Read(path string) (*FlightMetadata, error)
}

// Extractor reads metadata through a shared exiftool process. The camera
// writes its flight telemetry into the EXIF UserComment field as
// "Pitch = x Roll = y Yaw = z" free text.
type Extractor struct {
	et *exiftool.Exiftool
}

// NewExtractor starts an exiftool process in numeric (no print conversion)
// mode, so GPS coordinates arrive as plain decimals.
func NewExtractor() (*Extractor, error) {
	et, err := exiftool.NewExiftool(exiftool.NoPrintConversion())
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &Extractor{et: et}, nil
}

// Close shuts the exiftool process down.
func (e *Extractor) Close() error {
	return e.et.Close()
}

// Read extracts the flight metadata of the image at path.
func (e *Extractor) Read(path string) (*FlightMetadata, error) {
	fms := e.et.ExtractMetadata(path)
	if len(fms) == 0 {
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("no result")}
	}
	fm := fms[0]
	if fm.Err != nil {
		return nil, &ExtractionError{Path: path, Err: fm.Err}
	}

	for k, v := range fm.Fields {
		klog.V(2).Infof("%q=%v", k, v)
	}

	return flightMetadata(fm), nil
}

// Angle pattern the camera embeds in UserComment: a label, "=", and a
// signed decimal. Looser or stricter patterns change which files report
// angles at all, so this is load-bearing.
var (
	pitchRe = regexp.MustCompile(`(?i)Pitch\s*=\s*(-?\d+(\.\d+)?)`)
	rollRe  = regexp.MustCompile(`(?i)Roll\s*=\s*(-?\d+(\.\d+)?)`)
	yawRe   = regexp.MustCompile(`(?i)Yaw\s*=\s*(-?\d+(\.\d+)?)`)
)

// flightMetadata maps raw exiftool fields into the flight record. GPS
// fields default to 0 when absent; the capture time falls back from
// DateTimeOriginal to CreateDate, then to the literal "N/A".
func flightMetadata(fm exiftool.FileMetadata) *FlightMetadata {
	m := &FlightMetadata{DateTime: "N/A"}

	if v, err := fm.GetString("DateTimeOriginal"); err == nil {
		m.DateTime = v
	} else if v, err := fm.GetString("CreateDate"); err == nil {
		m.DateTime = v
	} else {
		klog.V(1).Infof("no capture time in %s", fm.File)
	}

	m.GPSLatitude = gpsField(fm, "GPSLatitude")
	m.GPSLongitude = gpsField(fm, "GPSLongitude")
	m.GPSAltitude = gpsField(fm, "GPSAltitude")

	comment, err := fm.GetString("UserComment")
	if err != nil {
		klog.V(2).Infof("no user comment in %s", fm.File)
	}
	m.UserComment = comment
	m.Pitch = matchAngle(pitchRe, comment)
	m.Roll = matchAngle(rollRe, comment)
	m.Yaw = matchAngle(yawRe, comment)

	return m
}

func gpsField(fm exiftool.FileMetadata, key string) float64 {
	v, err := fm.GetFloat(key)
	if err != nil {
		return 0
	}
	return v
}

func matchAngle(re *regexp.Regexp, comment string) *float64 {
	groups := re.FindStringSubmatch(comment)
	if groups == nil {
		return nil
	}
	v, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
