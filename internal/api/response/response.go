// Package response defines the envelope wrapped around every API outcome.
package response

const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Success codes.
const (
	CodeAuthSuccess    = "AUTH_SUCCESS"
	CodeProductCreated = "PRODUCT_CREATED"
	CodeProductFetched = "PRODUCT_FETCHED"
	CodeProductUpdated = "PRODUCT_UPDATED"
	CodeProductDeleted = "PRODUCT_DELETE_SUCCESS"
)

// Failure codes not owned by the domain.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeBadCredentials      = "BAD_CREDENTIALS"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// Links maps a relation name to a URI.
type Links map[string]string

// Envelope is the uniform body of every response, success or failure.
type Envelope struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Links   Links  `json:"links,omitempty"`
}

func Success(code, message string, data any, links Links) Envelope {
	return Envelope{Status: StatusSuccess, Code: code, Message: message, Data: data, Links: links}
}

func Failure(code, message string) Envelope {
	return Envelope{Status: StatusFailure, Code: code, Message: message}
}
