package errors

// ERR identifies the category of a cache-core error.
type ERR int32

const (
	ERR_UNKNOWN ERR = iota
	ERR_INVALID_ARGUMENT
	ERR_INVARIANT_VIOLATION
	ERR_NOT_FOUND
	ERR_PROCESSING
	ERR_CONTEXT_CANCELED
	ERR_STORAGE_UNAVAILABLE
	ERR_STORAGE_ERROR
	ERR_TX_ALREADY_EXISTS
)

var errName = map[ERR]string{
	ERR_UNKNOWN:             "UNKNOWN",
	ERR_INVALID_ARGUMENT:    "INVALID_ARGUMENT",
	ERR_INVARIANT_VIOLATION: "INVARIANT_VIOLATION",
	ERR_NOT_FOUND:           "NOT_FOUND",
	ERR_PROCESSING:          "PROCESSING",
	ERR_CONTEXT_CANCELED:    "CONTEXT_CANCELED",
	ERR_STORAGE_UNAVAILABLE: "STORAGE_UNAVAILABLE",
	ERR_STORAGE_ERROR:       "STORAGE_ERROR",
	ERR_TX_ALREADY_EXISTS:   "TX_ALREADY_EXISTS",
}

func (c ERR) String() string {
	if name, ok := errName[c]; ok {
		return name
	}

	return "UNKNOWN"
}

// Sentinel errors for common conditions, usable with errors.Is.
var (
	ErrUnknown            = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument    = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrInvariantViolation = New(ERR_INVARIANT_VIOLATION, "invariant violation")
	ErrNotFound           = New(ERR_NOT_FOUND, "not found")
	ErrProcessing         = New(ERR_PROCESSING, "error processing")
	ErrContextCanceled    = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrStorageUnavailable = New(ERR_STORAGE_UNAVAILABLE, "storage unavailable")
	ErrStorageError       = New(ERR_STORAGE_ERROR, "storage error")
	ErrTxAlreadyExists    = New(ERR_TX_ALREADY_EXISTS, "tx already exists")
)

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}

func NewInvariantViolationError(message string, params ...interface{}) error {
	return New(ERR_INVARIANT_VIOLATION, message, params...)
}

func NewNotFoundError(message string, params ...interface{}) error {
	return New(ERR_NOT_FOUND, message, params...)
}

func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}

func NewStorageError(message string, params ...interface{}) error {
	return New(ERR_STORAGE_ERROR, message, params...)
}

func NewTxAlreadyExistsError(message string, params ...interface{}) error {
	return New(ERR_TX_ALREADY_EXISTS, message, params...)
}
