package workspace

import (
	"errors"

	"insightiq/validation"
)

// ValidationError is a local precondition failure. It never reaches the backend and
// its message is shown next to the control that triggered it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrEmptyQuery          = &ValidationError{Message: validation.MsgQueryRequired}
	ErrNoDataset           = &ValidationError{Message: validation.MsgDatasetRequired}
	ErrDatasetNameRequired = &ValidationError{Message: validation.MsgDatasetNameRequired}
	ErrNotCSV              = &ValidationError{Message: validation.MsgCSVRequired}

	// ErrSuperseded is returned to a caller whose request finished after a newer one
	// was started. Its response was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")

	ErrUploadUnavailable = errors.New("uploads are unavailable in demo mode")
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrQueryFailed       = errors.New("query failed")
	ErrUploadFailed      = errors.New("Upload failed")
)

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
