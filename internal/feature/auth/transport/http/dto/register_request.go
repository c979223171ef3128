package dto

// RegisterReq is the request body for POST /auth/register.
// The plaintext password is only ever handed to the hasher. An empty username
// is rejected by the credential service, not by binding.
type RegisterReq struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password" binding:"required"`
}
