package pkg

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

var (
	ErrTransport = errors.New("transport failure")
	ErrRejected  = errors.New("move rejected")
)

const (
	PathPlay     = "/play"
	PathUserMove = "/usermove"
	PathBotMove  = "/botmove"

	DefaultServer  = "http://localhost:3435"
	DefaultTimeout = 10 * time.Second
)

// Transport is the game server as seen by the client.
type Transport interface {
	Play(ctx context.Context) (MessageConnect, error)
	SubmitMove(ctx context.Context, move MessageMove) (MessageMoveResult, error)
	BotMove(ctx context.Context) (MessageEvent, error)
}

// HTTPTransport talks to the game server over HTTP. Failed requests are not
// retried.
type HTTPTransport struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
	headers map[string]string
}

type Option func(*HTTPTransport)

func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

func WithHeader(key, value string) Option {
	return func(t *HTTPTransport) { t.headers[key] = value }
}

// WithDial replaces the dialer, used to reach in-memory servers.
func WithDial(dial func(addr string) (net.Conn, error)) Option {
	return func(t *HTTPTransport) { t.http.Dial = dial }
}

func NewHTTPTransport(baseURL string, opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{ReadTimeout: DefaultTimeout, WriteTimeout: DefaultTimeout},
		timeout: DefaultTimeout,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HTTPTransport) Play(ctx context.Context) (MessageConnect, error) {
	var m MessageConnect
	err := t.doJSON(ctx, fasthttp.MethodGet, PathPlay, nil, &m)
	return m, err
}

func (t *HTTPTransport) SubmitMove(ctx context.Context, move MessageMove) (MessageMoveResult, error) {
	var m MessageMoveResult
	err := t.doJSON(ctx, fasthttp.MethodPost, PathUserMove, move, &m)
	return m, err
}

func (t *HTTPTransport) BotMove(ctx context.Context) (MessageEvent, error) {
	var m MessageEvent
	err := t.doJSON(ctx, fasthttp.MethodGet, PathBotMove, nil, &m)
	return m, err
}

func (t *HTTPTransport) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(t.baseURL + path)
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	if in != nil {
		payload, err := Encode(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := t.http.DoDeadline(req, resp, t.deadline(ctx)); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return fmt.Errorf("%w: %s %s: status=%d body=%s", ErrTransport, method, path, status, truncate(string(resp.Body()), 256))
	}
	if err := Decode(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrTransport, path, err)
	}
	return nil
}

func (t *HTTPTransport) deadline(ctx context.Context) time.Time {
	dl := time.Now().Add(t.timeout)
	if ctxDL, ok := ctx.Deadline(); ok && ctxDL.Before(dl) {
		return ctxDL
	}
	return dl
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
