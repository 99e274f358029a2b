package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/CrestNiraj12/terminalthread/domain"
)

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk. The file is
// read on every call so a token rotated by another tool is picked up.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty: %w", f.path, domain.ErrUnauthorized)
	}

	return token, nil
}

// StaticTokenProvider returns a fixed token, e.g. one passed through the
// environment.
type StaticTokenProvider string

func (s StaticTokenProvider) AccessToken() (string, error) {
	token := strings.TrimSpace(string(s))
	if token == "" {
		return "", fmt.Errorf("no access token configured: %w", domain.ErrUnauthorized)
	}
	return token, nil
}

// Resolve prefers an explicit token over the token file.
func Resolve(token, path string) TokenProvider {
	if strings.TrimSpace(token) != "" {
		return StaticTokenProvider(token)
	}
	return NewFileTokenProvider(path)
}
