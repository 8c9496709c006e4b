package domain

import "errors"

// Sentinel errors shared across services. Handlers and the central HTTP
// error handler map these to status codes; everything else is a 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrClientNotFound     = errors.New("client not found")
	ErrClientExists       = errors.New("client already exists")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrTokenInvalid       = errors.New("verification token invalid")
	ErrTokenExpired       = errors.New("verification token expired")

	ErrOrderNotFound = errors.New("order not found")
	ErrLeadNotFound  = errors.New("lead not found")
	ErrRoleNotFound  = errors.New("role not found")

	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrUnknownOffer     = errors.New("unknown offer")
	ErrAmbiguousOffer   = errors.New("choose a fixed tier or a custom amount, not both")
	ErrUnknownCurrency  = errors.New("currency not offered for this collection method")
	ErrMethodNotOffered = errors.New("collection method not available in this municipality")

	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrSessionSubmitted  = errors.New("checkout session already submitted")
	ErrStepIncomplete    = errors.New("current step has missing required fields")
	ErrInvalidStepChange = errors.New("invalid step change")
)
