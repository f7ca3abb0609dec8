package tecnifix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/tecnifix/tecnifix-go/headers"
)

// APIError captures structured backend error metadata. The backend is
// reachable and answered; it just said no.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

// Error implements the error interface.
func (e APIError) Error() string {
	if e.Code == "" {
		e.Code = "UNKNOWN"
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("%s (%d)", e.Code, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := APIError{
		Status:    resp.StatusCode,
		RequestID: resp.Header.Get(headers.RequestID),
	}
	if len(data) == 0 {
		apiErr.Message = resp.Status
		return apiErr
	}
	// Spring-style error body: {"status":..,"error":..,"message":..}.
	var payload struct {
		Status  int    `json:"status"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Code = payload.Error
	apiErr.Message = payload.Message
	if payload.Status != 0 {
		apiErr.Status = payload.Status
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}

// TransportErrorKind classifies why a request never produced a response.
type TransportErrorKind string

const (
	TransportErrorDNS        TransportErrorKind = "dns"
	TransportErrorTimeout    TransportErrorKind = "timeout"
	TransportErrorConnRefuse TransportErrorKind = "connection_refused"
	TransportErrorCanceled   TransportErrorKind = "canceled"
	TransportErrorOther      TransportErrorKind = "other"
)

// TransportError wraps network-level failures: the backend was never
// reached, so nothing can be said about the credentials.
type TransportError struct {
	Kind    TransportErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tecnifix: %s (%s): %v", e.Message, e.Kind, e.Cause)
	}
	return fmt.Sprintf("tecnifix: %s (%s)", e.Message, e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e TransportError) Unwrap() error { return e.Cause }

func classifyTransportErrorKind(err error) TransportErrorKind {
	var dnsErr *net.DNSError
	switch {
	case err == nil:
		return TransportErrorOther
	case errors.Is(err, context.Canceled):
		return TransportErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return TransportErrorTimeout
	case errors.As(err, &dnsErr):
		return TransportErrorDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return TransportErrorConnRefuse
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return TransportErrorTimeout
		}
		return TransportErrorOther
	}
}

// ConfigError reports invalid client configuration.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e ConfigError) Error() string {
	return "tecnifix: invalid config: " + e.Reason
}

// IsAuthRejected reports whether the backend declined the supplied
// credentials (401/403). Use this on login to tell "wrong password"
// apart from "server down".
func IsAuthRejected(err error) bool {
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsAuthExpired reports whether a request made with a stored credential
// came back 401, meaning the credential is no longer honored and the
// session should be invalidated.
func IsAuthExpired(err error) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsUnavailable reports whether the backend could not be reached at all.
func IsUnavailable(err error) bool {
	var transportErr TransportError
	return errors.As(err, &transportErr)
}

// UserMessage converts a client error into a short human-readable
// string suitable for display, distinguishing rejected credentials
// from an unreachable server.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsAuthRejected(err):
		var apiErr APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Code != "" {
			return apiErr.Message
		}
		return "invalid credentials"
	case IsUnavailable(err):
		return "server unavailable or network error"
	default:
		var apiErr APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return err.Error()
	}
}

func isRetryableError(err error) bool {
	var transportErr TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Kind != TransportErrorCanceled
	}
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 || apiErr.Status == http.StatusTooManyRequests
	}
	return false
}
