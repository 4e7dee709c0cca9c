package viewmodels

// GetStatusResponse response struct for the status request
type GetStatusResponse struct {
	Message string `json:"message"`
}
