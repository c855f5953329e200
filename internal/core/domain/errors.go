package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInternal is what an end caller sees for any unclassified failure.
	ErrInternal = errors.New("internal error")

	// Intake Errors.

	// ErrNoFiles indicates an upload request carried no archives.
	ErrNoFiles = errors.New("no files uploaded")

	// ErrUnsupportedFileType indicates an uploaded file is not a .zip archive.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrArchiveTooLarge indicates an archive exceeds the configured size limit.
	ErrArchiveTooLarge = errors.New("archive exceeds maximum size")

	// Backend Errors.

	// ErrBackendUnauthorized indicates the storage credentials were rejected.
	ErrBackendUnauthorized = errors.New("storage backend: unauthorised")

	// ErrBackendForbidden indicates the credentials lack bucket permissions.
	ErrBackendForbidden = errors.New("storage backend: forbidden")

	// ErrBackendNotFound indicates the bucket does not exist.
	ErrBackendNotFound = errors.New("storage backend: bucket not found")

	// ErrBackendRateLimited indicates the backend throttled the request.
	ErrBackendRateLimited = errors.New("storage backend: rate limited")
)

// ValidationCode classifies a user-correctable package rejection.
type ValidationCode string

const (
	CodeMissingRootHTML     ValidationCode = "MISSING_ROOT_HTML"
	CodeEmptyRootHTML       ValidationCode = "EMPTY_ROOT_HTML"
	CodeMissingGWDMetadata  ValidationCode = "MISSING_GWD_METADATA"
	CodeMissingAssetsFolder ValidationCode = "MISSING_ASSETS_FOLDER"
	CodeBasenameMismatch    ValidationCode = "BASENAME_MISMATCH"
)

// ValidationError rejects a package. Its message is shown to the caller verbatim.
type ValidationError struct {
	Code    ValidationCode
	Message string

	// Archive and RootBasename are set for CodeBasenameMismatch only.
	Archive      string
	RootBasename string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError carrying the same code, so the sentinels
// below work with errors.Is regardless of per-instance details.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Validation sentinels.
var (
	ErrMissingRootHTML = &ValidationError{
		Code:    CodeMissingRootHTML,
		Message: "Zip file does not contain a root .html file",
	}
	ErrEmptyRootHTML = &ValidationError{
		Code:    CodeEmptyRootHTML,
		Message: "Root .html file is missing content",
	}
	ErrMissingGWDMetadata = &ValidationError{
		Code:    CodeMissingGWDMetadata,
		Message: "Root .html file does not contain Google Web Designer metadata",
	}
	ErrMissingAssetsFolder = &ValidationError{
		Code:    CodeMissingAssetsFolder,
		Message: "Zip file is missing assets folder for linked assets",
	}
	ErrBasenameMismatch = &ValidationError{
		Code:    CodeBasenameMismatch,
		Message: "Zip file name does not contain root .html basename",
	}
)

// NewBasenameMismatch reports that archive does not contain rootBasename.
func NewBasenameMismatch(archive, rootBasename string) *ValidationError {
	return &ValidationError{
		Code:         CodeBasenameMismatch,
		Message:      fmt.Sprintf("Zip file name '%s' does not contain basename '%s'", archive, rootBasename),
		Archive:      archive,
		RootBasename: rootBasename,
	}
}

// ExtractionError is a failure of the archive extraction step.
type ExtractionError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// PublishError is a failure to read, transform or upload one file.
// Backend is empty when the failure happened before any write.
type PublishError struct {
	Path    string
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to upload %s to %s: %v", e.Path, e.Backend, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PublishError) Unwrap() error {
	return e.Err
}

// IsUserError reports whether err is safe to show to an end caller as is.
func IsUserError(err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return true
	}
	return errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrUnsupportedFileType) ||
		errors.Is(err, ErrArchiveTooLarge) ||
		errors.Is(err, ErrInvalidInput)
}

// PublicMessage returns the text an end caller may see for err.
// Anything not user-correctable is reduced to ErrInternal's message.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	for _, sentinel := range []error{ErrNoFiles, ErrUnsupportedFileType, ErrArchiveTooLarge, ErrInvalidInput} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ErrInternal.Error()
}
