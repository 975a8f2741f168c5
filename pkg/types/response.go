// Package types holds the wire shapes shared across the HTTP surface.
package types

// SuccessEnvelope wraps every 2xx JSON body: {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details are only populated for
// codes whose metadata allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error body: {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
