package mastodon

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	xhtml "golang.org/x/net/html"
)

// htmlToText converts Mastodon's status HTML to plain text. Paragraphs
// become blank-line separated, <br> becomes a newline, and entities are
// decoded by the tokenizer.
func htmlToText(raw string) string {
	if raw == "" {
		return ""
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	skip := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return sanitizeForTerminal(strings.TrimSpace(sb.String()))

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "p":
				if sb.Len() > 0 {
					sb.WriteString("\n\n")
				}
			case "br":
				sb.WriteString("\n")
			case "script", "style":
				if tt == xhtml.StartTagToken {
					skip++
				}
			}

		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			}

		case xhtml.TextToken:
			if skip == 0 {
				sb.Write(tokenizer.Text())
			}
		}
	}
}

// sanitizeForTerminal drops escape sequences and control characters that
// could repaint or hijack the terminal, keeping newlines and tabs.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r <= 0x9f:
			return -1
		default:
			return r
		}
	}, s)
}
