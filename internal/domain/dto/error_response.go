package dto

import "time"

// ErrorResponse is the standardized JSON body for all non-2xx responses.
//
// Fields:
//   - Message: human-readable description of what failed.
//   - ErrorDetails: underlying error text, when one exists.
//   - Timestamp: when the error response was produced.
type ErrorResponse struct {
	Message      string    `json:"message" example:"question is required"`
	ErrorDetails string    `json:"error,omitempty" example:"invalid character '}'"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	e := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		e.ErrorDetails = err.Error()
	}
	return e
}

// Error implements the error interface so an ErrorResponse can travel as a
// regular error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
