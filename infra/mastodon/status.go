package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/terminalthread/domain"
)

// mastodonStatus is the subset of Mastodon's Status entity we care about.
type mastodonStatus struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"` // HTML
	CreatedAt       string          `json:"created_at"`
	EditedAt        *string         `json:"edited_at"`
	URL             string          `json:"url"`
	InReplyToID     *string         `json:"in_reply_to_id"`
	RepliesCount    int             `json:"replies_count"`
	FavouritesCount int             `json:"favourites_count"`
	Account         mastodonAccount `json:"account"`
}

type mastodonAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Acct        string `json:"acct"`
}

type mastodonContext struct {
	Ancestors   []mastodonStatus `json:"ancestors"`
	Descendants []mastodonStatus `json:"descendants"`
}

type mastodonSearchResults struct {
	Statuses []mastodonStatus `json:"statuses"`
}

// StatusService implements app.StatusService and app.SearchService.
type StatusService struct {
	client *Client
}

// NewStatusService creates a StatusService backed by Mastodon.
func NewStatusService(client *Client) *StatusService {
	return &StatusService{client: client}
}

func (s *StatusService) Status(ctx context.Context, id string) (domain.Status, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Status{}, domain.ErrEmptyStatusID
	}
	data, err := s.client.Get(ctx, "/api/v1/statuses/"+url.PathEscape(id))
	if err != nil {
		return domain.Status{}, fmt.Errorf("fetching status: %w", err)
	}
	var st mastodonStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.Status{}, fmt.Errorf("parsing status: %w", err)
	}
	return mapStatus(st), nil
}

func (s *StatusService) Context(ctx context.Context, id string) ([]domain.Status, []domain.Status, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil, domain.ErrEmptyStatusID
	}
	data, err := s.client.Get(ctx, "/api/v1/statuses/"+url.PathEscape(id)+"/context")
	if err != nil {
		return nil, nil, fmt.Errorf("fetching context: %w", err)
	}
	var c mastodonContext
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("parsing context: %w", err)
	}
	return mapStatuses(c.Ancestors), mapStatuses(c.Descendants), nil
}

// SearchStatuses resolves query (typically a remote post URL) through the
// v2 search endpoint, asking the server to fetch unknown remote posts.
func (s *StatusService) SearchStatuses(ctx context.Context, query string, limit int) ([]domain.Status, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "statuses")
	q.Set("resolve", "true")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	data, err := s.client.Get(ctx, "/api/v2/search?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("searching statuses: %w", err)
	}
	var res mastodonSearchResults
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}
	return mapStatuses(res.Statuses), nil
}

func mapStatuses(in []mastodonStatus) []domain.Status {
	out := make([]domain.Status, 0, len(in))
	for _, st := range in {
		out = append(out, mapStatus(st))
	}
	return out
}

func mapStatus(st mastodonStatus) domain.Status {
	createdAt, _ := time.Parse(time.RFC3339, st.CreatedAt)

	var editedAt *time.Time
	if st.EditedAt != nil {
		if t, err := time.Parse(time.RFC3339, *st.EditedAt); err == nil {
			editedAt = &t
		}
	}

	var inReplyTo string
	if st.InReplyToID != nil {
		inReplyTo = *st.InReplyToID
	}

	username := sanitizeForTerminal(st.Account.Acct)
	author := sanitizeForTerminal(st.Account.DisplayName)
	if author == "" {
		author = username
	}

	return domain.Status{
		ID:           st.ID,
		AccountID:    st.Account.ID,
		Author:       author,
		Username:     username,
		Content:      htmlToText(st.Content),
		CreatedAt:    createdAt,
		EditedAt:     editedAt,
		URL:          st.URL,
		InReplyToID:  inReplyTo,
		RepliesCount: st.RepliesCount,
		LikesCount:   st.FavouritesCount,
	}
}
