package domain

import "time"

// Status represents a single post in a conversation.
type Status struct {
	ID           string
	AccountID    string
	Author       string
	Username     string
	Content      string // Plain text, HTML stripped
	CreatedAt    time.Time
	EditedAt     *time.Time // Nil unless the post was edited
	URL          string     // Original post URL
	InReplyToID  string     // Empty for top-level posts
	RepliesCount int
	LikesCount   int
}

// IsReply reports whether the status answers another status.
func (s Status) IsReply() bool {
	return s.InReplyToID != ""
}

// DisplayName prefers the author's display name over the account handle.
func (s Status) DisplayName() string {
	if s.Author != "" {
		return s.Author
	}
	return s.Username
}
