package postgres

import (
	"context"
	"errors"
	"time"

	"go-applytrack-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type documentRepo struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) domain.DocumentRepository {
	return &documentRepo{db: db}
}

// Create inserts a new document, generating its id and timestamps
func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, user_id, company_name, position, resume_markdown, cover_letter_markdown, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = domain.StatusDraft
	}

	_, err := r.db.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.CompanyName,
		doc.Position,
		doc.ResumeMarkdown,
		doc.CoverLetterMarkdown,
		doc.Status,
		doc.Notes,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID retrieves one document by id
func (r *documentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, user_id, company_name, position, resume_markdown, cover_letter_markdown, status, notes, created_at, updated_at
		FROM documents
		WHERE id = $1`

	var doc domain.Document
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.UserID, &doc.CompanyName, &doc.Position,
		&doc.ResumeMarkdown, &doc.CoverLetterMarkdown, &doc.Status, &doc.Notes,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchByUserID retrieves all documents of a user, optionally filtered by status
func (r *documentRepo) FetchByUserID(ctx context.Context, userID string, status string) ([]domain.Document, error) {
	query := `
		SELECT id, user_id, company_name, position, resume_markdown, cover_letter_markdown, status, notes, created_at, updated_at
		FROM documents
		WHERE user_id = $1`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(
			&doc.ID, &doc.UserID, &doc.CompanyName, &doc.Position,
			&doc.ResumeMarkdown, &doc.CoverLetterMarkdown, &doc.Status, &doc.Notes,
			&doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

// Update writes the mutable fields of a document and bumps updated_at
func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	query := `
		UPDATE documents
		SET company_name = $1, position = $2, resume_markdown = $3, cover_letter_markdown = $4, status = $5, notes = $6, updated_at = $7
		WHERE id = $8`

	doc.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		doc.CompanyName,
		doc.Position,
		doc.ResumeMarkdown,
		doc.CoverLetterMarkdown,
		doc.Status,
		doc.Notes,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a document permanently (no soft delete)
func (r *documentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
