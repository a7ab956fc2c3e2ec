package types

// Error codes returned in ErrorResponse.ErrorCode
const (
	ErrorCodeInvalidParam   = "INVALID_PARAM"
	ErrorCodeEntityNotFound = "ENTITY_NOT_FOUND"
	ErrorCodeUnauthorized   = "UNAUTHORIZED"
	ErrorCodeRateLimited    = "RATE_LIMITED"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Details   string `json:"details"`
}
