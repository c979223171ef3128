// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// LoginReq is the request body for POST /auth/login.
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
