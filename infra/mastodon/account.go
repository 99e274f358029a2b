package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
)

// AccountService implements app.AccountService using the Mastodon API.
type AccountService struct {
	client   *Client
	cachedID string
}

// NewAccountService creates an AccountService backed by Mastodon.
func NewAccountService(client *Client) *AccountService {
	return &AccountService{client: client}
}

// CurrentAccountID returns the authenticated account, fetched once.
func (s *AccountService) CurrentAccountID(ctx context.Context) (string, error) {
	if s.cachedID != "" {
		return s.cachedID, nil
	}

	data, err := s.client.Get(ctx, "/api/v1/accounts/verify_credentials")
	if err != nil {
		return "", fmt.Errorf("fetching account: %w", err)
	}

	var acct mastodonAccount
	if err := json.Unmarshal(data, &acct); err != nil {
		return "", fmt.Errorf("parsing account: %w", err)
	}

	s.cachedID = acct.ID
	return acct.ID, nil
}
