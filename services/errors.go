package services

import "net/http"

// ServiceError is a typed error carrying the HTTP status the controller
// should respond with and a stable machine-readable code.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Error codes used across the settlement pipeline.
const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeBadSignature  = "INVALID_SIGNATURE"
	CodeNotFound      = "NOT_FOUND"
	CodeForbidden     = "FORBIDDEN"
	CodeOrderNotPaid  = "ORDER_NOT_PAID"
	CodeAlreadyIssued = "TICKETS_ALREADY_ISSUED"
	CodeRendering     = "RENDERING_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

func errConfiguration(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Code: CodeConfiguration, Message: msg}
}

func errBadSignature() *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Code: CodeBadSignature, Message: "Invalid notification signature"}
}

func errNotFound(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

func errForbidden(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: msg}
}

func errOrderNotPaid() *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeOrderNotPaid, Message: "Order is not paid"}
}

func errAlreadyIssued() *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeAlreadyIssued, Message: "Tickets already issued for this order"}
}

func errRendering() *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadGateway, Code: CodeRendering, Message: "Ticket rendering is unavailable, retry later"}
}

func errInternal(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Code: CodeInternal, Message: msg}
}
