package postgres

import (
	"context"
	"errors"
	"time"

	"go-applytrack-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type shareRepo struct {
	db *pgxpool.Pool
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *pgxpool.Pool) domain.ShareRepository {
	return &shareRepo{db: db}
}

const shareColumns = `token, document_id, user_id, show_resume, show_cover_letter, show_notes, editable, created_at, updated_at, expires_at`

func scanShare(row pgx.Row) (*domain.Share, error) {
	var s domain.Share
	err := row.Scan(
		&s.Token, &s.DocumentID, &s.UserID,
		&s.ShowResume, &s.ShowCoverLetter, &s.ShowNotes, &s.Editable,
		&s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new share record keyed by its token
func (r *shareRepo) Create(ctx context.Context, share *domain.Share) error {
	query := `
		INSERT INTO shares (` + shareColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	share.CreatedAt = now
	share.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		share.Token, share.DocumentID, share.UserID,
		share.ShowResume, share.ShowCoverLetter, share.ShowNotes, share.Editable,
		share.CreatedAt, share.UpdatedAt, share.ExpiresAt,
	)
	return err
}

// GetByToken retrieves a share by its token
func (r *shareRepo) GetByToken(ctx context.Context, token string) (*domain.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM shares WHERE token = $1`
	return scanShare(r.db.QueryRow(ctx, query, token))
}

// GetByDocumentAndUser retrieves the share a user created for a document.
// The upsert path keeps at most one per (document, user) pair; ordering is a
// guard against legacy duplicates.
func (r *shareRepo) GetByDocumentAndUser(ctx context.Context, documentID, userID string) (*domain.Share, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM shares
		WHERE document_id = $1 AND user_id = $2
		ORDER BY updated_at DESC
		LIMIT 1`
	return scanShare(r.db.QueryRow(ctx, query, documentID, userID))
}

// FetchByDocumentID retrieves all shares referencing a document
func (r *shareRepo) FetchByDocumentID(ctx context.Context, documentID string) ([]domain.Share, error) {
	query := `
		SELECT ` + shareColumns + `
		FROM shares
		WHERE document_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.Share
	for rows.Next() {
		var s domain.Share
		if err := rows.Scan(
			&s.Token, &s.DocumentID, &s.UserID,
			&s.ShowResume, &s.ShowCoverLetter, &s.ShowNotes, &s.Editable,
			&s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt,
		); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

// Update overwrites a share's configuration and expiry, bumping updated_at
func (r *shareRepo) Update(ctx context.Context, share *domain.Share) error {
	query := `
		UPDATE shares
		SET show_resume = $1, show_cover_letter = $2, show_notes = $3, editable = $4, updated_at = $5, expires_at = $6
		WHERE token = $7`

	share.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		share.ShowResume, share.ShowCoverLetter, share.ShowNotes, share.Editable,
		share.UpdatedAt, share.ExpiresAt, share.Token,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a share by token
func (r *shareRepo) Delete(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shares WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountCreatedSince counts share records a user created after the given
// instant. Backs the rolling-window creation rate limit.
func (r *shareRepo) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM shares WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&count)
	return count, err
}
