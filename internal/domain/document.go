package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Application lifecycle statuses for a document
const (
	StatusDraft        = "Draft"
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffer        = "Offer"
	StatusRejected     = "Rejected"
)

// ValidStatus reports whether s is one of the allowed lifecycle statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Document is a resume/cover-letter bundle for one job application
type Document struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id" validate:"required"`
	CompanyName         string    `json:"company_name" validate:"required,max=200"`
	Position            string    `json:"position" validate:"required,max=200"`
	ResumeMarkdown      string    `json:"resume_markdown"`
	CoverLetterMarkdown string    `json:"cover_letter_markdown"`
	Status              string    `json:"status" validate:"omitempty,oneof=Draft Applied Interviewing Offer Rejected"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DocumentUpdate carries the whitelisted fields of a partial update.
// Nil pointers mean "leave unchanged".
type DocumentUpdate struct {
	CompanyName         *string
	Position            *string
	ResumeMarkdown      *string
	CoverLetterMarkdown *string
	Status              *string
	Notes               *string
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	FetchByUserID(ctx context.Context, userID string, status string) ([]Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
}

type DocumentUsecase interface {
	CreateDocument(ctx context.Context, userID string, doc *Document) error
	GetDocument(ctx context.Context, userID, id string) (*Document, error)
	ListDocuments(ctx context.Context, userID, status string) ([]Document, error)
	UpdateDocument(ctx context.Context, userID, id string, update DocumentUpdate) (*Document, error)
	UpdateStatus(ctx context.Context, userID, id, status string) error
	DeleteDocument(ctx context.Context, userID, id string) error
}
