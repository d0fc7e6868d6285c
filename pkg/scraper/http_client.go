package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the hard cap on one page fetch.
const DefaultTimeout = 15 * time.Second

// maxRedirects bounds the redirect chain followed by one fetch.
const maxRedirects = 5

// ErrTooManyRedirects means the redirect chain exceeded maxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// DownloadClient fetches a page and returns its body decoded to UTF-8.
type DownloadClient interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPClient is a fasthttp client sending browser-like headers. It never retries; a
// timeout is reported as ErrTimeout.
type HTTPClient struct {
	client         *fasthttp.Client
	timeout        time.Duration
	acceptLanguage string
	userAgents     []string
}

// NewHTTPClient creates a client with the given per-request timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client: &fasthttp.Client{
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxResponseBodySize:      16 << 20,
			NoDefaultUserAgentHeader: true,
		},
		timeout:        timeout,
		acceptLanguage: "it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7",
		userAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/121.0",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:109.0) Gecko/20100101 Firefox/121.0",
		},
	}
}

// SetAcceptLanguage overrides the Accept-Language header.
func (h *HTTPClient) SetAcceptLanguage(value string) {
	if value != "" {
		h.acceptLanguage = value
	}
}

// SetDial routes connections through dial. Tests use it with an in-memory listener.
func (h *HTTPClient) SetDial(dial fasthttp.DialFunc) {
	h.client.Dial = dial
}

// Download performs one GET and returns the body as UTF-8 text.
func (h *HTTPClient) Download(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	body, err := h.Get(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// Get performs one GET bounded by the client timeout and the context deadline,
// whichever comes first.
func (h *HTTPClient) Get(ctx context.Context, targetURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	h.setRequestHeaders(req, targetURL)

	deadline := time.Now().Add(h.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// Redirects share the one deadline, so the whole chain stays within the timeout.
	for redirects := 0; ; redirects++ {
		if err := h.client.DoDeadline(req, resp, deadline); err != nil {
			if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
				return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}

		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) || len(location) == 0 {
			break
		}
		if redirects >= maxRedirects {
			return nil, fmt.Errorf("%w: %w after %d hops", ErrConnection, ErrTooManyRedirects, redirects)
		}
		req.URI().UpdateBytes(location)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, &StatusError{Code: status}
	}

	body, err := h.decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode body: %v", ErrConnection, err)
	}
	return body, nil
}

func (h *HTTPClient) setRequestHeaders(req *fasthttp.Request, targetURL string) {
	req.Header.SetUserAgent(h.userAgents[hash(targetURL)%uint32(len(h.userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", h.acceptLanguage)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	if parsed, err := url.Parse(targetURL); err == nil && parsed.Host != "" {
		req.Header.Set("Referer", fmt.Sprintf("%s://%s/", parsed.Scheme, parsed.Host))
	}
}

// decodeBody undoes content encoding and converts the declared charset to UTF-8.
func (h *HTTPClient) decodeBody(resp *fasthttp.Response) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch string(bytes.ToLower(resp.Header.ContentEncoding())) {
	case "gzip":
		raw, err = resp.BodyGunzip()
	case "br":
		raw, err = resp.BodyUnbrotli()
	case "deflate":
		raw, err = resp.BodyInflate()
	default:
		raw = append([]byte(nil), resp.Body()...)
	}
	if err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(bytes.NewReader(raw), string(resp.Header.ContentType()))
	if err != nil {
		return raw, nil
	}
	return io.ReadAll(reader)
}

// hash spreads URLs over the user agent pool so one URL always gets the same agent.
func hash(s string) uint32 {
	h := uint32(0)
	for _, c := range s {
		h = h*31 + uint32(c)
	}
	return h
}
