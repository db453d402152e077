package domain

import (
	"context"
	"time"
)

// ShareTTL is how long a share link stays valid after creation or refresh
const ShareTTL = 30 * 24 * time.Hour

// Share is a capability token granting scoped access to one document.
// The token is both the primary key and the sole access credential:
// anyone holding it gets exactly the configured access until expiry.
type Share struct {
	Token           string    `json:"token"`
	DocumentID      string    `json:"document_id"`
	UserID          string    `json:"user_id"`
	ShowResume      bool      `json:"show_resume"`
	ShowCoverLetter bool      `json:"show_cover_letter"`
	ShowNotes       bool      `json:"show_notes"`
	Editable        bool      `json:"editable"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired reports whether the share is past its expiry at the given instant
func (s *Share) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ShareConfig is the visibility and edit configuration applied when a share
// is created or refreshed
type ShareConfig struct {
	ShowResume      bool
	ShowCoverLetter bool
	ShowNotes       bool
	Editable        bool
}

// ShareResult is returned to the owner after a create-or-update
type ShareResult struct {
	Token     string    `json:"token"`
	ShareURL  string    `json:"share_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SharedDocumentView is a document projected through a share's visibility
// configuration. Company, position and the editable flag are always present
// (display/labeling only); content fields are set only when exposed.
type SharedDocumentView struct {
	CompanyName         string    `json:"company_name"`
	Position            string    `json:"position"`
	Editable            bool      `json:"editable"`
	ResumeMarkdown      *string   `json:"resume_markdown,omitempty"`
	CoverLetterMarkdown *string   `json:"cover_letter_markdown,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// SharedDocumentUpdate carries content edits submitted through a share token.
// Nil pointers mean "not supplied".
type SharedDocumentUpdate struct {
	ResumeMarkdown      *string `json:"resume_markdown"`
	CoverLetterMarkdown *string `json:"cover_letter_markdown"`
	Notes               *string `json:"notes"`
}

type ShareRepository interface {
	Create(ctx context.Context, share *Share) error
	GetByToken(ctx context.Context, token string) (*Share, error)
	GetByDocumentAndUser(ctx context.Context, documentID, userID string) (*Share, error)
	FetchByDocumentID(ctx context.Context, documentID string) ([]Share, error)
	Update(ctx context.Context, share *Share) error
	Delete(ctx context.Context, token string) error
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type ShareUsecase interface {
	CreateOrUpdateShare(ctx context.Context, userID, documentID string, cfg ShareConfig) (*ShareResult, error)
	GetLatestShare(ctx context.Context, userID, documentID string) (*Share, error)
	ListShares(ctx context.Context, userID, documentID string) ([]Share, error)
	DeleteShare(ctx context.Context, userID, documentID, token string) error
	ResolveShare(ctx context.Context, token string) (*SharedDocumentView, error)
	UpdateSharedDocument(ctx context.Context, token string, update SharedDocumentUpdate) error
}
