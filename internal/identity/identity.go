package identity

// User is the identity record of the connected employee.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// Provider exposes the identity of the current user. An absent or malformed
// record is an error; callers treat it as a fatal precondition.
type Provider interface {
	CurrentUser() (User, error)
}

// Store is a Provider that can also establish and clear the session.
type Store interface {
	Provider

	// SetCurrentUser records the connected user.
	SetCurrentUser(user User) error

	// Clear removes the session record.
	Clear() error

	// Close closes the underlying store.
	Close() error
}
