// Package headers defines HTTP header constants used by the TecniFix client.
package headers

const (
	// RequestID is the header for request correlation. The client
	// stamps a fresh id on every outgoing request unless the caller
	// already set one.
	RequestID = "X-TecniFix-Request-Id"
)
