package domain

// User is the single logged-in identity. There is exactly zero or one
// active user at a time — this models a session, not a multi-tenant
// account system.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url,omitempty"`
}
