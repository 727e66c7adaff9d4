package crawl

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// ErrorKind classifies a fetch failure into the typed error kinds spec §7
// defines, so callers can decide fatal vs. non-fatal handling without
// string-matching error text.
type ErrorKind string

const (
	ErrNone             ErrorKind = ""
	ErrTransientNetwork ErrorKind = "transient_network"
	ErrContentTooLarge  ErrorKind = "content_too_large"
	ErrParseFailure     ErrorKind = "parse_failure"
)

// trackedHeaders are the response headers several server/security checks
// need (C12 checks 8, 28, 75, 97, 98); only these are retained, to keep
// PageRecord small rather than storing every header verbatim.
var trackedHeaders = []string{"Server", "Cache-Control", "Strict-Transport-Security", "X-Robots-Tag", "Content-Encoding"}

// FetchResult is the raw outcome of fetching one URL, before extraction.
type FetchResult struct {
	FinalURL    string
	StatusCode  int
	Body        string
	ContentType string
	Headers     map[string]string
	// RedirectStatus is the status code of the first 3xx hop seen while
	// following redirects to FinalURL (0 if the request wasn't
	// redirected), captured by redirectTracker below so checks 43, 93 and
	// 95 can see the redirect (and 95 tell a 301 from a 302) even though
	// colly follows the chain itself.
	RedirectStatus int
	ErrorKind      ErrorKind
	Err            error
}

// redirectTracker wraps a Transport to record the status code of any
// redirect response seen before http.Client follows it — net/http's
// CheckRedirect hook only ever sees the *request*, not the redirect's own
// status code, so the RoundTripper layer is the only place to observe it.
type redirectTracker struct {
	rt     http.RoundTripper
	mu     sync.Mutex
	status int
}

func (t *redirectTracker) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.rt.RoundTrip(req)
	if err == nil && resp != nil && resp.StatusCode >= 300 && resp.StatusCode < 400 {
		t.mu.Lock()
		if t.status == 0 {
			t.status = resp.StatusCode
		}
		t.mu.Unlock()
	}
	return resp, err
}

// maxBodyBytes bounds how much of a response body is read, implementing
// spec §7's ContentTooLarge guard so one bloated page can't exhaust
// worker memory.
const maxBodyBytes = 8 << 20 // 8MiB

// Fetcher performs the plain-HTTP fetch path of C1, built on
// github.com/gocolly/colly/v2 the way the teacher's main.go drives a
// collector per crawl — here scoped to a single-URL Visit per call so the
// caller's own Frontier/Pacer control the crawl loop instead of colly's.
type Fetcher struct {
	timeout  time.Duration
	headers  HeaderProvider
	allowed  []string
}

// NewFetcher builds a Fetcher. allowedDomains mirrors the teacher's
// main.go www/non-www AllowedDomains pairing.
func NewFetcher(timeout time.Duration, headers HeaderProvider, allowedDomains []string) *Fetcher {
	return &Fetcher{timeout: timeout, headers: headers, allowed: allowedDomains}
}

// Fetch retrieves rawURL and returns its raw body and metadata. A single
// colly.Collector is built per call: colly's design assumes one collector
// drives a whole crawl via OnHTML link-following, but this pipeline's
// Frontier already owns link discovery and scheduling, so each fetch is
// an isolated single-page visit.
func (f *Fetcher) Fetch(rawURL string) FetchResult {
	c := colly.NewCollector()
	if len(f.allowed) > 0 {
		c.AllowedDomains = f.allowed
	}
	c.SetRequestTimeout(f.timeout)
	if f.headers != nil {
		c.UserAgent = f.headers.UserAgent()
	}

	tracker := &redirectTracker{rt: http.DefaultTransport}
	c.SetClient(&http.Client{Transport: tracker, Timeout: f.timeout})

	var result FetchResult

	c.OnRequest(func(r *colly.Request) {
		if f.headers == nil {
			return
		}
		for key, values := range f.headers.Headers() {
			for _, v := range values {
				r.Headers.Set(key, v)
			}
		}
	})

	c.OnResponse(func(r *colly.Response) {
		result.FinalURL = r.Request.URL.String()
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.Headers = map[string]string{}
		for _, key := range trackedHeaders {
			if v := r.Headers.Get(key); v != "" {
				result.Headers[key] = v
			}
		}
		if len(r.Body) > maxBodyBytes {
			result.ErrorKind = ErrContentTooLarge
			result.Err = fmt.Errorf("crawl: response body exceeds %d bytes", maxBodyBytes)
			return
		}
		result.Body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		result.StatusCode = r.StatusCode
		result.ErrorKind = ErrTransientNetwork
		result.Err = err
	})

	if err := c.Visit(rawURL); err != nil && result.Err == nil {
		result.ErrorKind = ErrTransientNetwork
		result.Err = err
	}

	tracker.mu.Lock()
	result.RedirectStatus = tracker.status
	tracker.mu.Unlock()

	return result
}
