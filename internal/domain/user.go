package domain

// Registered account as stored by the user repository.
// PasswordHash is a bcrypt digest; the plaintext never leaves the
// registration/login handlers.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
}

// UserProfile is the session-store blob read at workflow start for
// personalization. It never carries credentials.
type UserProfile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Profile strips credential fields for the session store.
func (u User) Profile() UserProfile {
	return UserProfile{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}
