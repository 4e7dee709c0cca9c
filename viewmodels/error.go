package viewmodels

// ErrorResponse response struct for an error
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
