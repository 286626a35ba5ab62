package http

// ErrorBody is the wire shape of every non-2xx response.
type ErrorBody struct {
	Error string `json:"error" example:"Stock 'XYZ' not found"`
}

// HealthBody is the wire shape of the health endpoint.
type HealthBody struct {
	Status string `json:"status" example:"ok"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string `json:"code,omitempty" example:"ERR_ONEOF"`
	Field   string `json:"field,omitempty" example:"period"`
	Message string `json:"message,omitempty" example:"period must be one of: 1y, 2y, 5y"`
}
