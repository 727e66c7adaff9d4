package crawl

import (
	"math/rand"
	"net/http"
)

// HeaderProvider supplies request headers for a fetch, generalizing the
// teacher's services/stealth.go ScrapeOps integration into a pluggable
// interface. The teacher's hardcoded ScrapeOps API key literal is
// dropped entirely: a credential-shaped string has no business in
// checked-in code, teacher example or not. StaticHeaderProvider below is
// the default, env-free fallback; a ScrapeOps-backed provider can be
// added by implementing this interface with a key read from config.
type HeaderProvider interface {
	UserAgent() string
	Headers() http.Header
}

var defaultUserAgents = []string{
	"SEOAuditBot/1.0 (+https://example.com/bot)",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
}

// StaticHeaderProvider rotates through a fixed list of user agents,
// matching the shape of the teacher's GetRandomUserAgent but without any
// external API dependency.
type StaticHeaderProvider struct {
	agents []string
}

// NewStaticHeaderProvider builds a provider over agents, or the built-in
// default list if agents is empty.
func NewStaticHeaderProvider(agents []string) *StaticHeaderProvider {
	if len(agents) == 0 {
		agents = defaultUserAgents
	}
	return &StaticHeaderProvider{agents: agents}
}

func (p *StaticHeaderProvider) UserAgent() string {
	return p.agents[rand.Intn(len(p.agents))]
}

func (p *StaticHeaderProvider) Headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	return h
}
