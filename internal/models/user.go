package models

// Roles a user account can hold. Privilege is carried on the record
// instead of being inferred from the username.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AdminUsername is the reserved superuser account seeded on first start.
// It can never be deleted.
const AdminUsername = "admin"

// User is a stored account. Users are keyed by username in the user
// store, so the name itself is not part of the record.
type User struct {
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}
