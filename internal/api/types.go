// Package api holds the response envelopes and parameter binding helpers shared
// by every HTTP handler.
package api

// ErrorResponse is the body returned for every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// StatusResponse is returned by the health endpoint.
type StatusResponse struct {
	Status string `json:"status"`
}
