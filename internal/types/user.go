package types

// User is the authenticated account as returned by the auth endpoints.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Gender  string `json:"gender,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}
