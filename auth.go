package tecnifix

import "net/http"

// TokenSource supplies the bearer credential for outgoing requests. It
// is consulted on every request so a credential cleared mid-lifetime
// (logout, self-heal) stops being attached without rebuilding the
// client. An empty string means "no credential".
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource for a fixed credential, useful in tests
// and one-off scripts.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

type authStrategy interface {
	Apply(req *http.Request)
}

type authChain []authStrategy

func (c authChain) Apply(req *http.Request) {
	for _, s := range c {
		if s == nil {
			continue
		}
		s.Apply(req)
	}
}

type bearerAuth struct {
	source TokenSource
}

func (b bearerAuth) Apply(req *http.Request) {
	if b.source == nil {
		return
	}
	token := b.source.Token()
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func buildAuthChain(source TokenSource) authChain {
	var chain authChain
	if source != nil {
		chain = append(chain, bearerAuth{source: source})
	}
	return chain
}
