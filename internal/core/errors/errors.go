package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidRequestError = "invalid_request"
	HttpStationNotFound     = "station_not_found"
	HttpRunNotFound         = "run_not_found"
	HttpStoreUnavailable    = "store_unavailable"
)

// ErrorResponse is the error response body returned by the query API.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
