package segaslides

import "fmt"

// ConfigError reports invalid input configuration: a bad page range, an
// unrecognized dithering method, or a raster that is not a whole number
// of tiles. It is always raised before any conversion work begins and is
// not retryable without fixing the input.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// ConversionError reports a rasterization or quantization failure for a
// specific page. It is fatal for the run; no partial output is written.
type ConversionError struct {
	Page int
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting page %d: %v", e.Page, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// PackagingError reports a violated packaging invariant, such as a
// corrupt tile store. It indicates a defect, not bad input.
type PackagingError struct {
	Err error
}

func (e *PackagingError) Error() string {
	return "packaging: " + e.Err.Error()
}

func (e *PackagingError) Unwrap() error {
	return e.Err
}
