package thread

import (
	"time"

	"github.com/CrestNiraj12/terminalthread/domain"
)

func status(id, parent string) domain.Status {
	return domain.Status{ID: id, InReplyToID: parent, Author: "Author " + id}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID())
	}
	return out
}

func editedAt(s domain.Status, t time.Time) domain.Status {
	s.EditedAt = &t
	return s
}
