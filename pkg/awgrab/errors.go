package awgrab

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFolder means a folder listing contained no qualifying images.
	ErrEmptyFolder = errors.New("no images found in folder")

	// ErrNoPhotos means an explicit photo set was empty.
	ErrNoPhotos = errors.New("no photo URLs provided")

	// ErrNoTargets means a bulk delete was requested with nothing to delete.
	ErrNoTargets = errors.New("no delete targets provided")
)

// RemoteFetchError is a non-2xx response from the device.
type RemoteFetchError struct {
	URL    string
	Status int
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Status, e.URL)
}

// TransportError is a network-level failure before any response arrived.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExtractionError is a metadata read failure for one staged file.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
