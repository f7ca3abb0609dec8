package tecnifix

import (
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, srv *httptest.Server, source TokenSource) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:     srv.URL,
		Credentials: source,
		HTTPClient:  srv.Client(),
	})
	if err != nil {
		t.Fatalf("new test client: %v", err)
	}
	return client
}

// makeCredential builds a well-formed (but unsigned-garbage) bearer
// credential carrying the given claims.
func makeCredential(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}
