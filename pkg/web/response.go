// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into a json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a readable message for a failed binding validation.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater or equal to " + fe.Param()
	case "max":
		return " must be less or equal to " + fe.Param()
	case "gt":
		return " must be greater than " + fe.Param()
	default:
		return " is invalid"
	}
}
