package model

import "time"

// PasswordResetToken represents a reset credential row. At most one live
// token exists per user.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ColumnInfo describes one column of the reset-token table for the status
// endpoint.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// ResetTokenStatus reports schema and token counts for the reset-token table.
type ResetTokenStatus struct {
	Success       bool         `json:"success"`
	TableExists   bool         `json:"tableExists"`
	Columns       []ColumnInfo `json:"columns,omitempty"`
	LiveTokens    int64        `json:"liveTokens"`
	ExpiredTokens int64        `json:"expiredTokens"`
}

// SweepResponse reports how many expired tokens a sweep removed.
type SweepResponse struct {
	Success bool  `json:"success"`
	Removed int64 `json:"removed"`
}

// RequestResetRequest asks for a password-reset token to be issued.
type RequestResetRequest struct {
	Email string `json:"email"`
}

// ConfirmResetRequest consumes a reset token and sets a new password.
type ConfirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
