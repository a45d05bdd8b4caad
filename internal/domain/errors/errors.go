package errors

import (
	"github.com/pkg/errors"
)

// Category tells the caller how to react to an error.
type Category int

const (
	// CategoryValidation means the input was rejected; ask the user again.
	CategoryValidation Category = iota + 1
	// CategoryStorage means the roster file could not be read or written; warn and continue.
	CategoryStorage
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Category() Category // How the caller should react
	ErrorCode() string  // Stable error code
	Message() string    // User-friendly error message
	Details() string    // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	category  Category
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(category Category, errorCode, message, details string) *BaseError {
	return &BaseError{
		category:  category,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same error code, so errors built
// with WithDetails still match their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Category returns how the caller should react
func (e *BaseError) Category() Category {
	return e.category
}

// ErrorCode returns the stable error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		category:  e.category,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrInvalidInput is returned for an empty name or a non-integer level or battle count.
	ErrInvalidInput = NewBaseError(
		CategoryValidation,
		"INVALID_INPUT",
		"dato no válido",
		"",
	)

	// ErrEmptyRoster is returned when a report is requested over an empty roster.
	ErrEmptyRoster = NewBaseError(
		CategoryValidation,
		"EMPTY_ROSTER",
		"el gremio está vacío",
		"",
	)

	// ErrCorruptData is returned when the roster file exists but cannot be understood.
	ErrCorruptData = NewBaseError(
		CategoryStorage,
		"CORRUPT_DATA",
		"el archivo del gremio está dañado",
		"",
	)

	// ErrPersistFailure is returned when the roster could not be written to disk.
	ErrPersistFailure = NewBaseError(
		CategoryStorage,
		"PERSIST_FAILURE",
		"no se pudo guardar el gremio",
		"",
	)
)

// StorageError carries the underlying I/O or decode failure behind a storage
// error while still matching its sentinel through errors.Is.
type StorageError struct {
	kind *BaseError
	err  error
}

// NewStorageError wraps err as the given storage error kind.
func NewStorageError(kind *BaseError, err error) AppError {
	return &StorageError{
		kind: kind,
		err:  err,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return errors.Wrap(e.err, e.kind.message).Error()
}

// Unwrap exposes both the sentinel and the underlying failure.
func (e *StorageError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Category returns how the caller should react
func (e *StorageError) Category() Category {
	return e.kind.category
}

// ErrorCode returns the stable error code
func (e *StorageError) ErrorCode() string {
	return e.kind.errorCode
}

// Message returns the user-friendly error message
func (e *StorageError) Message() string {
	return e.kind.message
}

// Details returns detailed error information
func (e *StorageError) Details() string {
	return e.err.Error()
}

// CategoryOf returns the category of the first AppError in err's chain.
func CategoryOf(err error) (Category, bool) {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return 0, false
	}

	return appErr.Category(), true
}

// IsValidation reports whether err should make the caller ask again.
func IsValidation(err error) bool {
	category, ok := CategoryOf(err)

	return ok && category == CategoryValidation
}

// IsStorage reports whether err is a storage problem the user should be warned about.
func IsStorage(err error) bool {
	category, ok := CategoryOf(err)

	return ok && category == CategoryStorage
}
