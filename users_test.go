package tecnifix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/tecnifix/tecnifix-go/routes"
	"github.com/tecnifix/tecnifix-go/session"
)

func TestLoginStoresCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.UsersLogin || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if creds.Email != "a@b.com" || creds.Password != "secret12" {
			t.Fatalf("unexpected credentials %+v", creds)
		}
		w.Write([]byte("h.p.s"))
	}))
	defer srv.Close()

	store := &session.MemoryStore{}
	sessions, err := session.NewService(session.ServiceConfig{Store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	client := newTestClient(t, srv, sessions)

	credential, err := client.Users.Login(context.Background(), Credentials{
		Email:    "a@b.com",
		Password: "secret12",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if credential != "h.p.s" {
		t.Fatalf("unexpected credential %q", credential)
	}
	if err := sessions.Establish(credential); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if got, _ := store.Get(); got != "h.p.s" {
		t.Fatalf("store holds %q", got)
	}
}

func TestLoginTrimsInputs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if creds.Email != "a@b.com" || creds.Password != "secret12" {
			t.Fatalf("inputs not trimmed: %+v", creds)
		}
		w.Write([]byte("h.p.s"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	if _, err := client.Users.Login(context.Background(), Credentials{
		Email:    "  a@b.com ",
		Password: " secret12  ",
	}); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestLoginRejectsLineBreaks(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, err := client.Users.Login(context.Background(), Credentials{
		Email:    "a@b.com\nx",
		Password: "secret12",
	})
	if err == nil {
		t.Fatal("expected error for embedded newline")
	}
	if calls.Load() != 0 {
		t.Fatal("no request must be sent for rejected input")
	}
}

func TestLoginAuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  401,
			"error":   "Unauthorized",
			"message": "Credenciales inválidas",
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, err := client.Users.Login(context.Background(), Credentials{
		Email:    "a@b.com",
		Password: "wrong",
	})
	if !IsAuthRejected(err) {
		t.Fatalf("expected auth-rejected, got %v", err)
	}
	if IsUnavailable(err) {
		t.Fatal("a backend rejection is not an availability failure")
	}
	if msg := UserMessage(err); msg != "Credenciales inválidas" {
		t.Fatalf("unexpected user message %q", msg)
	}
}

func TestLoginServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening

	client, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Users.Login(context.Background(), Credentials{
		Email:    "a@b.com",
		Password: "secret12",
	})
	if !IsUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if IsAuthRejected(err) {
		t.Fatal("an unreachable server must not read as rejected credentials")
	}
	if msg := UserMessage(err); msg != "server unavailable or network error" {
		t.Fatalf("unexpected user message %q", msg)
	}
}

func TestSignupDoesNotEstablishSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.Users || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.FirstName != "Ana" || req.LastName != "Ruiz" {
			t.Fatalf("unexpected name fields %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := &session.MemoryStore{}
	sessions, err := session.NewService(session.ServiceConfig{Store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	client := newTestClient(t, srv, sessions)

	if err := client.Users.Signup(context.Background(), SignupRequest{
		Email:     " ana@b.com ",
		Password:  "secret12",
		FirstName: "Ana",
		LastName:  "Ruiz",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if got, _ := store.Get(); got != "" {
		t.Fatalf("signup must not store a credential, got %q", got)
	}
}

func TestSignupValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()
	client := newTestClient(t, srv, nil)

	if err := client.Users.Signup(context.Background(), SignupRequest{
		Email:    "not-an-email",
		Password: "secret12",
	}); err == nil {
		t.Fatal("expected error for invalid email")
	}
	if err := client.Users.Signup(context.Background(), SignupRequest{
		Email:     "a@b.com",
		Password:  "secret12",
		FirstName: "Ana\n",
	}); err == nil {
		t.Fatal("expected error for embedded newline")
	}
}
