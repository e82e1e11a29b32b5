package auth

// Identity describes who is making a request.
// The zero value is a guest.
type Identity struct {
	UserID   uint
	Username string
}

// IsGuest reports whether the identity is unauthenticated.
func (i Identity) IsGuest() bool {
	return i.UserID == 0
}
