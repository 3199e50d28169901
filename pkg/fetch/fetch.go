// Package fetch downloads the compressed native catalog.
package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"

	nglog "github.com/holon-run/nativegen/pkg/log"
)

const (
	// AcceptEncoding is sent with every request. The body is returned still
	// encoded; decoding is the caller's job.
	AcceptEncoding = "gzip, deflate"
	// DefaultUserAgent identifies nativegen to the catalog host.
	DefaultUserAgent = "nativegen"
	// maxErrorBody bounds how much of a failed response is quoted in errors.
	maxErrorBody = 512
)

// Payload is the raw response of a successful fetch.
type Payload struct {
	Body            []byte
	ContentEncoding string
	StatusCode      int
}

// Fetcher performs the single catalog download.
type Fetcher struct {
	client    *http.Client
	userAgent string
	rootCAs   *x509.CertPool
	transport http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTransport replaces the TLS 1.3 transport, e.g. with a recorded one.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) { f.transport = rt }
}

// WithRootCAs trusts the given pool instead of the system roots.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(f *Fetcher) { f.rootCAs = pool }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// New creates a Fetcher. No client timeout is set; the request context is
// the only way to abort a download.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(f)
	}
	if f.transport == nil {
		f.transport = newTransport(f.rootCAs)
	}
	f.client = &http.Client{Transport: f.transport}
	return f
}

func newTransport(rootCAs *x509.CertPool) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = &tls.Config{
		MinVersion: tls.VersionTLS13,
		RootCAs:    rootCAs,
	}
	// keep the body exactly as the server encoded it
	t.DisableCompression = true
	return t
}

// Fetch issues one GET for url. Transport failures and non-2xx statuses are
// returned as errors; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept-Encoding", AcceptEncoding)
	req.Header.Set("User-Agent", f.userAgent)

	nglog.Debug("fetching catalog", "url", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch %s returned HTTP %d: %s", url, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	nglog.Debug("catalog downloaded", "url", url, "bytes", len(body), "encoding", resp.Header.Get("Content-Encoding"))

	return &Payload{
		Body:            body,
		ContentEncoding: resp.Header.Get("Content-Encoding"),
		StatusCode:      resp.StatusCode,
	}, nil
}
