package tecnifix

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"

	"github.com/tecnifix/tecnifix-go/routes"
)

// isValidEmail checks if the given string is a valid email address.
func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// containsNewline rejects inputs with embedded line breaks before they
// reach a request body.
func containsNewline(values ...string) bool {
	for _, v := range values {
		if strings.ContainsAny(v, "\n\r") {
			return true
		}
	}
	return false
}

// Credentials encapsulates the email/password inputs for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest contains the registration fields for a new account.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UsersClient wraps the account endpoints: registration and login.
//
// Login returns the credential rather than storing it; the caller hands
// it to a session.Service (or any session.Store) to establish the
// session. Calls are plain blocking requests with no in-flight
// deduplication; issuing a second login while one is pending sends two
// requests.
type UsersClient struct {
	client *Client
}

func (u *UsersClient) ensureInitialized() error {
	if u == nil || u.client == nil {
		return fmt.Errorf("tecnifix: users client not initialized")
	}
	return nil
}

// Login exchanges email/password for a bearer credential. The backend
// returns the credential as the raw response body. Inputs are trimmed;
// inputs containing line breaks are rejected before any request is sent.
//
// On failure, IsAuthRejected distinguishes "backend declined the
// credentials" from IsUnavailable's "backend unreachable".
func (u *UsersClient) Login(ctx context.Context, creds Credentials) (string, error) {
	if err := u.ensureInitialized(); err != nil {
		return "", err
	}
	if containsNewline(creds.Email, creds.Password) {
		return "", ConfigError{Reason: "email and password must not contain line breaks"}
	}
	creds.Email = strings.TrimSpace(creds.Email)
	creds.Password = strings.TrimSpace(creds.Password)
	if creds.Email == "" || creds.Password == "" {
		return "", ConfigError{Reason: "email and password required"}
	}

	req, err := u.client.newJSONRequest(ctx, http.MethodPost, routes.UsersLogin, creds)
	if err != nil {
		return "", err
	}
	resp, err := u.client.send(req)
	if err != nil {
		return "", err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	credential := strings.TrimSpace(string(body))
	if credential == "" {
		return "", fmt.Errorf("tecnifix: login response contained no credential")
	}
	return credential, nil
}

// Signup registers a new account. It does not establish a session; the
// user logs in afterwards. Same input hygiene as Login.
func (u *UsersClient) Signup(ctx context.Context, req SignupRequest) error {
	if err := u.ensureInitialized(); err != nil {
		return err
	}
	if containsNewline(req.Email, req.Password, req.FirstName, req.LastName) {
		return ConfigError{Reason: "signup fields must not contain line breaks"}
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || req.Password == "" {
		return ConfigError{Reason: "email and password required"}
	}
	if !isValidEmail(req.Email) {
		return ConfigError{Reason: "invalid email format"}
	}
	return u.client.sendAndDecode(ctx, http.MethodPost, routes.Users, req, nil)
}
