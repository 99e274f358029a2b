package mastodon

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/CrestNiraj12/terminalthread/domain"
)

type staticToken string

func (s staticToken) AccessToken() (string, error) { return string(s), nil }

type failingToken struct{}

func (failingToken) AccessToken() (string, error) { return "", errors.New("no token") }

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

func newTestClient(h http.Handler) *Client {
	return &Client{
		baseURL:       "http://example.test",
		tokenProvider: staticToken("tok"),
		http:          &http.Client{Transport: handlerRoundTripper{h: h}},
	}
}

func TestClientGet_SendsBearerToken(t *testing.T) {
	c := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Fatalf("missing auth header: %q", auth)
		}
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	data, err := c.Get(context.Background(), "/api/v1/ping")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", data)
	}
}

func TestClientGet_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusGone, domain.ErrNotFound},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrUnauthorized},
		{http.StatusInternalServerError, nil},
	}
	for _, tc := range tests {
		c := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.code)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))
		_, err := c.Get(context.Background(), "/x")
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != tc.code {
			t.Fatalf("code %d: expected APIError, got %v", tc.code, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("code %d: expected %v, got %v", tc.code, tc.want, err)
		}
		if tc.want == nil && (errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized)) {
			t.Fatalf("code %d: must not map to a domain error", tc.code)
		}
	}
}

func TestClientGet_TokenFailure(t *testing.T) {
	c := newTestClient(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("request must not be sent without a token")
	}))
	c.tokenProvider = failingToken{}
	if _, err := c.Get(context.Background(), "/x"); err == nil || !strings.Contains(err.Error(), "auth") {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestTruncateBody(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := truncateBody([]byte(long))
	if len(got) != 259 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation: %d %q", len(got), got[len(got)-5:])
	}
}
