package users

// Passwords shorter than this are rejected at registration and update.
const PasswordMinLength = 5

// Registration is the client-sent body to create an account.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Profile is an account as shown to its owner.
//
// The password, even hashed, never appears here.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (p Profile) Equal(o Profile) bool {
	return p == o
}

// Update carries changes for the authenticated account.
//
// nil fields are left as is.
type Update struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
}

// TokenRequest is the client-sent body to obtain an API token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse grants a bearer token for the credentials
// sent in a TokenRequest.
type TokenResponse struct {
	Token string `json:"token"`
}
