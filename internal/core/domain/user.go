package domain

import "time"

// Identity kinds carried in session token claims. The two login surfaces
// are independent: an operator token never grants client access and vice versa.
const (
	IdentityOperator = "operator"
	IdentityClient   = "client"
)

// User is a back-office operator account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullname"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Client is a registered customer. Accounts start unverified and activate
// through the email verification token.
type Client struct {
	ID            string `json:"id"`
	FullName      string `json:"fullname"`
	Email         string `json:"email"`
	Contact       string `json:"contact"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	EmailVerified bool   `json:"email_verified"`
	// Verification token and its expiry are set while unverified and
	// cleared on successful verification (single use).
	VerificationToken     string    `json:"-"`
	VerificationExpiresAt time.Time `json:"-"`
	CreatedAt             time.Time `json:"created_at"`
}
