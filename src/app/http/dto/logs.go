package dto

// LogRequest is a client side log entry.
type LogRequest struct {
	Level      string `json:"level" binding:"required"`
	Message    string `json:"message" binding:"required"`
	ModuleName string `json:"module_name"`
}

// StatusResponse reports the outcome of a fire and forget call.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
