package model

// CheckDeletableRequest asks which associated records a deletion would remove.
type CheckDeletableRequest struct {
	UserID string `json:"userId"`
}

// CheckDeletableResponse reports the user's public fields plus the record
// types the cascade would take with it.
type CheckDeletableResponse struct {
	Success        bool            `json:"success"`
	User           UserResponse    `json:"user"`
	AssociatedData map[string]bool `json:"associatedData"`
}

// DeleteAccountRequest represents an account deletion request. The password
// is re-confirmed before anything is removed.
type DeleteAccountRequest struct {
	UserID          string `json:"userId"`
	ConfirmPassword string `json:"confirmPassword"`
}

// DeletedUser echoes the identity fields of a removed account. The id is a
// string because callers send it as one.
type DeletedUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// DeleteAccountResponse represents a successful account deletion.
type DeleteAccountResponse struct {
	Success     bool        `json:"success"`
	DeletedUser DeletedUser `json:"deletedUser"`
}

// SeedResult reports the outcome of seeding the fixed test accounts.
type SeedResult struct {
	Success  bool           `json:"success"`
	Created  int            `json:"created"`
	Skipped  int            `json:"skipped"`
	Accounts []UserResponse `json:"accounts"`
}

// ListUsersResponse represents a plain user listing.
type ListUsersResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}
