package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalthread/app"
)

// StreamService implements app.StreamService over the streaming websocket.
type StreamService struct {
	client *Client
	dialer *websocket.Dialer
	log    zerolog.Logger
}

// NewStreamService creates a StreamService for the user stream.
func NewStreamService(client *Client, logger zerolog.Logger) *StreamService {
	return &StreamService{
		client: client,
		dialer: websocket.DefaultDialer,
		log:    logger.With().Str("component", "stream").Logger(),
	}
}

type streamFrame struct {
	Stream  []string `json:"stream"`
	Event   string   `json:"event"`
	Payload string   `json:"payload"`
}

// Subscribe connects to the user stream. Events the client does not use are
// dropped. The returned channel closes when ctx ends or the socket fails.
func (s *StreamService) Subscribe(ctx context.Context) (<-chan app.StreamEvent, error) {
	token, err := s.client.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	endpoint, err := streamURL(s.client.baseURL)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, resp, err := s.dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, &APIError{Method: http.MethodGet, Path: "/api/v1/streaming", StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("connecting to stream: %w", err)
	}

	events := make(chan app.StreamEvent, 16)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					s.log.Warn().Err(err).Msg("stream closed")
				}
				return
			}
			ev, ok, err := parseStreamFrame(data)
			if err != nil {
				s.log.Debug().Err(err).Msg("skipping malformed stream frame")
				continue
			}
			if !ok {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.log.Info().Str("endpoint", endpoint).Msg("stream connected")
	return events, nil
}

func streamURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing instance url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported instance scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/streaming"
	u.RawQuery = url.Values{"stream": {"user"}}.Encode()
	return u.String(), nil
}

// parseStreamFrame decodes one websocket message. ok is false for events the
// client ignores.
func parseStreamFrame(data []byte) (app.StreamEvent, bool, error) {
	var frame streamFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return app.StreamEvent{}, false, fmt.Errorf("parsing frame: %w", err)
	}

	switch frame.Event {
	case "update", "status.update":
		var st mastodonStatus
		if err := json.Unmarshal([]byte(frame.Payload), &st); err != nil {
			return app.StreamEvent{}, false, fmt.Errorf("parsing %s payload: %w", frame.Event, err)
		}
		status := mapStatus(st)
		kind := app.EventUpdate
		if frame.Event == "status.update" {
			kind = app.EventStatusUpdate
		}
		return app.StreamEvent{Kind: kind, Status: &status}, true, nil
	case "delete":
		return app.StreamEvent{Kind: app.EventDelete, DeletedID: strings.TrimSpace(frame.Payload)}, true, nil
	default:
		return app.StreamEvent{}, false, nil
	}
}
