package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/CrestNiraj12/terminalthread/domain"
)

// GetStatus retrieves a cached status. ok is false on a cache miss.
func (d *DB) GetStatus(ctx context.Context, id string) (domain.Status, bool, error) {
	row := d.db.QueryRowContext(ctx, `SELECT id, account_id, author, username, content,
		created_unix, edited_unix_nano, url, in_reply_to_id, replies_count, likes_count
		FROM statuses WHERE id = ?`, id)

	var st domain.Status
	var accountID, author, username, content, url, parent sql.NullString
	var created, edited sql.NullInt64
	err := row.Scan(&st.ID, &accountID, &author, &username, &content,
		&created, &edited, &url, &parent, &st.RepliesCount, &st.LikesCount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Status{}, false, nil
	}
	if err != nil {
		return domain.Status{}, false, fmt.Errorf("reading status %s: %w", id, err)
	}

	st.AccountID = accountID.String
	st.Author = author.String
	st.Username = username.String
	st.Content = content.String
	st.URL = url.String
	st.InReplyToID = parent.String
	if created.Valid {
		st.CreatedAt = time.Unix(created.Int64, 0).UTC()
	}
	if edited.Valid {
		t := time.Unix(0, edited.Int64).UTC()
		st.EditedAt = &t
	}
	return st, true, nil
}

// PutStatuses stores statuses, replacing earlier copies.
func (d *DB) PutStatuses(ctx context.Context, statuses ...domain.Status) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := putStatuses(ctx, tx, statuses); err != nil {
		return err
	}
	return tx.Commit()
}

func putStatuses(ctx context.Context, tx *sql.Tx, statuses []domain.Status) error {
	now := time.Now().Unix()
	for _, st := range statuses {
		var created, edited sql.NullInt64
		if !st.CreatedAt.IsZero() {
			created = sql.NullInt64{Int64: st.CreatedAt.Unix(), Valid: true}
		}
		if st.EditedAt != nil {
			edited = sql.NullInt64{Int64: st.EditedAt.UnixNano(), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO statuses
			(id, account_id, author, username, content, created_unix, edited_unix_nano,
			 url, in_reply_to_id, replies_count, likes_count, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, nullStr(st.AccountID), nullStr(st.Author), nullStr(st.Username),
			nullStr(st.Content), created, edited, nullStr(st.URL), nullStr(st.InReplyToID),
			st.RepliesCount, st.LikesCount, now)
		if err != nil {
			return fmt.Errorf("writing status %s: %w", st.ID, err)
		}
	}
	return nil
}

// GetContext returns the cached ancestors and descendants of id. ok is false
// when the context or any status it references is missing.
func (d *DB) GetContext(ctx context.Context, id string) (ancestors, descendants []domain.Status, ok bool, err error) {
	var ancJSON, descJSON string
	err = d.db.QueryRowContext(ctx,
		`SELECT ancestor_ids, descendant_ids FROM contexts WHERE status_id = ?`, id).
		Scan(&ancJSON, &descJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("reading context %s: %w", id, err)
	}

	var ancIDs, descIDs []string
	if err := json.Unmarshal([]byte(ancJSON), &ancIDs); err != nil {
		return nil, nil, false, fmt.Errorf("decoding ancestors of %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(descJSON), &descIDs); err != nil {
		return nil, nil, false, fmt.Errorf("decoding descendants of %s: %w", id, err)
	}

	if ancestors, ok, err = d.getStatuses(ctx, ancIDs); err != nil || !ok {
		return nil, nil, false, err
	}
	if descendants, ok, err = d.getStatuses(ctx, descIDs); err != nil || !ok {
		return nil, nil, false, err
	}
	return ancestors, descendants, true, nil
}

func (d *DB) getStatuses(ctx context.Context, ids []string) ([]domain.Status, bool, error) {
	out := make([]domain.Status, 0, len(ids))
	for _, id := range ids {
		st, ok, err := d.GetStatus(ctx, id)
		if err != nil || !ok {
			return nil, false, err
		}
		out = append(out, st)
	}
	return out, true, nil
}

// PutContext stores the thread around id together with every status in it.
func (d *DB) PutContext(ctx context.Context, id string, ancestors, descendants []domain.Status) error {
	ancJSON, err := json.Marshal(statusIDs(ancestors))
	if err != nil {
		return err
	}
	descJSON, err := json.Marshal(statusIDs(descendants))
	if err != nil {
		return err
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := putStatuses(ctx, tx, ancestors); err != nil {
		return err
	}
	if err := putStatuses(ctx, tx, descendants); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO contexts
		(status_id, ancestor_ids, descendant_ids, fetched_at) VALUES (?, ?, ?, ?)`,
		id, string(ancJSON), string(descJSON), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing context %s: %w", id, err)
	}
	return tx.Commit()
}

// DeleteStatus drops a status and any context rooted at it.
func (d *DB) DeleteStatus(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM statuses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting status %s: %w", id, err)
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM contexts WHERE status_id = ?`, id); err != nil {
		return fmt.Errorf("deleting context %s: %w", id, err)
	}
	return nil
}

func statusIDs(statuses []domain.Status) []string {
	ids := make([]string, 0, len(statuses))
	for _, st := range statuses {
		ids = append(ids, st.ID)
	}
	return ids
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
