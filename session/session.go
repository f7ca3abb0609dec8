package session

import "errors"

// ErrNoCredential reports an empty credential store (or an attempt to
// establish a session with an empty credential).
var ErrNoCredential = errors.New("session: no credential stored")

// ErrStoreRequired reports a Service constructed without a Store.
var ErrStoreRequired = errors.New("session: store required")

// Service derives the current identity from the store's credential.
// Nothing is cached: every query re-reads and re-decodes, so the view
// can never go stale relative to the store.
//
// A credential that fails to decode, or decodes without the claim a
// query needs, is treated as a security signal ("not our token"), not
// a data error: the store is cleared and the query reports anonymous.
type Service struct {
	store   Store
	onReset func()
}

// ServiceConfig wires the credential store into a Service.
type ServiceConfig struct {
	// Store holds the bearer credential. Required.
	Store Store
	// OnReset fires after Logout has cleared the store. It is the
	// "return to anonymous" reset: the browser app reloaded the whole
	// page here; a CLI or daemon drops whatever state it kept.
	OnReset func()
}

// NewService validates the configuration and returns a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: cfg.Store, onReset: cfg.OnReset}, nil
}

// Claims reads and decodes the stored credential. Unlike Role and
// Email it has no side effects: absence and decode failures are
// reported to the caller, who decides whether to Invalidate. Role and
// Email compose Claims with Invalidate for the self-healing behavior.
func (s *Service) Claims() (Claims, error) {
	credential, err := s.store.Get()
	if err != nil {
		return Claims{}, err
	}
	if credential == "" {
		return Claims{}, ErrNoCredential
	}
	return Decode(credential)
}

// Role returns the stored credential's role claim, or "" when no
// credential is stored, it cannot be decoded, or the claim is absent.
// In the failure cases the credential is discarded so the next query
// starts anonymous.
func (s *Service) Role() string {
	claims, err := s.Claims()
	if err != nil {
		s.selfHeal(err)
		return ""
	}
	if claims.Role == "" {
		//nolint:errcheck // best-effort discard of a foreign token
		_ = s.Invalidate()
		return ""
	}
	return claims.Role
}

// Email returns the credential's subject claim lower-cased, with the
// same decode-or-discard discipline as Role.
func (s *Service) Email() string {
	claims, err := s.Claims()
	if err != nil {
		s.selfHeal(err)
		return ""
	}
	if claims.Subject == "" {
		//nolint:errcheck // best-effort discard of a foreign token
		_ = s.Invalidate()
		return ""
	}
	return claims.Email()
}

// Authenticated reports whether a decodable, role-bearing credential is
// stored.
func (s *Service) Authenticated() bool {
	return s.Role() != ""
}

// Token returns the raw stored credential, or "" when none is stored.
// It deliberately skips decoding: the gateway attaches whatever the
// store holds and lets the backend judge it, so no self-heal happens
// here. Satisfies the client's TokenSource.
func (s *Service) Token() string {
	credential, err := s.store.Get()
	if err != nil {
		return ""
	}
	return credential
}

// Establish persists a freshly issued credential. Tokens are
// immutable: a new login always replaces the stored string.
func (s *Service) Establish(credential string) error {
	if credential == "" {
		return ErrNoCredential
	}
	return s.store.Save(credential)
}

// Invalidate clears the stored credential. Safe to call when nothing
// is stored.
func (s *Service) Invalidate() error {
	return s.store.Clear()
}

// Logout clears the credential and fires the reset hook. Idempotent:
// logging out twice leaves the store empty both times.
func (s *Service) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	if s.onReset != nil {
		s.onReset()
	}
	return nil
}

// selfHeal discards the credential after a decode failure. Storage
// read errors and plain absence leave the store alone; there is
// nothing to heal.
func (s *Service) selfHeal(err error) {
	var malformed MalformedCredentialError
	if errors.As(err, &malformed) {
		//nolint:errcheck // best-effort discard of a corrupt token
		_ = s.Invalidate()
	}
}
