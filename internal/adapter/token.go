package adapter

import "context"

// staticTokenProvider serves a fixed bearer token from configuration. Used
// when token acquisition happens out-of-band (e.g. a token pasted into the
// config file).
type staticTokenProvider struct {
	token string
}

// NewStaticTokenProvider returns a TokenProvider that always yields token.
func NewStaticTokenProvider(token string) TokenProvider {
	return &staticTokenProvider{token: token}
}

func (p *staticTokenProvider) Token(_ context.Context) (string, error) {
	return p.token, nil
}
