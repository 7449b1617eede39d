package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler authHandler
	blogHandler blogHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"blog 7 not found or you have no access to it"`
	Field   string `json:"field,omitempty" example:"new_status"`
}
