package session

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the credential payload fields the client consumes. Only
// shape and claim presence are checked client-side; the signature is
// the backend's trust decision and is never verified here.
type Claims struct {
	// Role is the authorization tier, an opaque backend-defined string
	// (known values: RoleAdmin, RoleCustomer — not a closed set).
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// Role literals the backend is known to issue. The client compares
// roles by exact string equality and never validates against a fixed
// list.
const (
	RoleAdmin    = "ROLE_ADMIN"
	RoleCustomer = "ROLE_CLIENTE"
)

// Email returns the subject claim lower-cased, the convention for the
// account email, or "" when absent.
func (c Claims) Email() string {
	return strings.ToLower(c.Subject)
}

// MalformedCredentialError reports a credential that is not a
// well-formed token: wrong segment shape, undecodable payload, or a
// payload that is not a claims record.
type MalformedCredentialError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e MalformedCredentialError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session: malformed credential: %s: %v", e.Reason, e.Cause)
	}
	return "session: malformed credential: " + e.Reason
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e MalformedCredentialError) Unwrap() error { return e.Cause }

// Decode parses the credential's claims without verifying the
// signature. Pure: no side effects, no network. A credential is
// well-formed iff it splits into exactly three non-empty dot-separated
// segments and its payload segment decodes to a claims record.
func Decode(credential string) (Claims, error) {
	segments := strings.Split(credential, ".")
	if len(segments) != 3 {
		return Claims{}, MalformedCredentialError{
			Reason: fmt.Sprintf("expected 3 segments, got %d", len(segments)),
		}
	}
	for _, segment := range segments {
		if segment == "" {
			return Claims{}, MalformedCredentialError{Reason: "empty segment"}
		}
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &claims); err != nil {
		return Claims{}, MalformedCredentialError{Reason: "payload does not decode", Cause: err}
	}
	return claims, nil
}
