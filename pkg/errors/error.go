package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// InvalidRecordError represents a malformed or out-of-range event field.
	InvalidRecordError ErrorCode = "invalid_record"
	// DuplicateOrderError represents an add for an order identifier that is already resting.
	DuplicateOrderError ErrorCode = "duplicate_order"
	// UnknownActionError represents an action kind outside the recognized set.
	UnknownActionError ErrorCode = "unknown_action"

	// FeedReadError represents a failure reading the input record stream.
	FeedReadError ErrorCode = "feed_read_error"
	// FeedWriteError represents a failure writing the output record stream.
	FeedWriteError ErrorCode = "feed_write_error"

	// KafkaReadError represents a failure consuming from the event topic.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaPublishError represents a failure publishing to the depth topic.
	KafkaPublishError ErrorCode = "kafka_publish_error"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "order size must be positive".
	Message string

	// Code (required) is the error code string identifying the failure class.
	// E.g. "invalid_record".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occurred on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message string, code ErrorCode, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    string(code),
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message string, code ErrorCode, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    string(code),
		Field:   field,
		Object:  object,
	}
}

// Error is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}

	return errDetails.Code == string(code)
}
