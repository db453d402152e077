package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"
)

// shareTokenBytes sized so the token carries 256 bits of randomness. The
// token is the only access control on public share routes, so it must stay
// unguessable.
const shareTokenBytes = 32

type shareUsecase struct {
	shareRepo       domain.ShareRepository
	documentRepo    domain.DocumentRepository
	shareURLBase    string
	rateLimitMax    int64
	rateLimitWindow time.Duration
}

// NewShareUsecase creates a new share usecase. shareURLBase is the frontend
// origin capability links are minted against.
func NewShareUsecase(
	shareRepo domain.ShareRepository,
	documentRepo domain.DocumentRepository,
	shareURLBase string,
	rateLimitMax int64,
	rateLimitWindow time.Duration,
) domain.ShareUsecase {
	return &shareUsecase{
		shareRepo:       shareRepo,
		documentRepo:    documentRepo,
		shareURLBase:    shareURLBase,
		rateLimitMax:    rateLimitMax,
		rateLimitWindow: rateLimitWindow,
	}
}

// generateShareToken returns a high-entropy hex token
func generateShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// getOwnedDocument verifies the requester owns the referenced document
func (uc *shareUsecase) getOwnedDocument(ctx context.Context, userID, documentID string) (*domain.Document, error) {
	doc, err := uc.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Document not found")
		}
		return nil, apperror.Internal(err)
	}
	if doc.UserID != userID {
		return nil, apperror.Forbidden("You do not own this document")
	}
	return doc, nil
}

// CreateOrUpdateShare upserts the share for (documentID, userID).
// An existing share keeps its token but gets the new configuration and a
// fresh expiry; a new share is subject to the rolling-window creation limit.
func (uc *shareUsecase) CreateOrUpdateShare(ctx context.Context, userID, documentID string, cfg domain.ShareConfig) (*domain.ShareResult, error) {
	// 1. Only the document owner can share it
	if _, err := uc.getOwnedDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(domain.ShareTTL)

	// 2. Refresh the existing share if this user already shared this document
	existing, err := uc.shareRepo.GetByDocumentAndUser(ctx, documentID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		existing.ShowResume = cfg.ShowResume
		existing.ShowCoverLetter = cfg.ShowCoverLetter
		existing.ShowNotes = cfg.ShowNotes
		existing.Editable = cfg.Editable
		existing.ExpiresAt = expiresAt

		if err := uc.shareRepo.Update(ctx, existing); err != nil {
			return nil, apperror.Internal(err)
		}
		return uc.shareResult(existing), nil
	}

	// 3. Creation path only: enforce the rolling-window limit. The count and
	// the insert are not atomic; a concurrent burst can slightly overshoot,
	// which is an accepted tolerance for this low-contention data.
	count, err := uc.shareRepo.CountCreatedSince(ctx, userID, now.Add(-uc.rateLimitWindow))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if count >= uc.rateLimitMax {
		return nil, apperror.TooManyRequests("Share creation limit reached, try again later")
	}

	// 4. Mint the token and persist
	token, err := generateShareToken()
	if err != nil {
		return nil, apperror.Internal(err)
	}

	share := &domain.Share{
		Token:           token,
		DocumentID:      documentID,
		UserID:          userID,
		ShowResume:      cfg.ShowResume,
		ShowCoverLetter: cfg.ShowCoverLetter,
		ShowNotes:       cfg.ShowNotes,
		Editable:        cfg.Editable,
		ExpiresAt:       expiresAt,
	}
	if err := uc.shareRepo.Create(ctx, share); err != nil {
		return nil, apperror.Internal(err)
	}
	return uc.shareResult(share), nil
}

func (uc *shareUsecase) shareResult(share *domain.Share) *domain.ShareResult {
	return &domain.ShareResult{
		Token:     share.Token,
		ShareURL:  fmt.Sprintf("%s/share/%s", uc.shareURLBase, share.Token),
		ExpiresAt: share.ExpiresAt,
	}
}

// GetLatestShare returns the share the owner created for this document
func (uc *shareUsecase) GetLatestShare(ctx context.Context, userID, documentID string) (*domain.Share, error) {
	if _, err := uc.getOwnedDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	share, err := uc.shareRepo.GetByDocumentAndUser(ctx, documentID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("No share exists for this document")
		}
		return nil, apperror.Internal(err)
	}
	return share, nil
}

// ListShares returns all shares of a document, owner only
func (uc *shareUsecase) ListShares(ctx context.Context, userID, documentID string) ([]domain.Share, error) {
	if _, err := uc.getOwnedDocument(ctx, userID, documentID); err != nil {
		return nil, err
	}

	shares, err := uc.shareRepo.FetchByDocumentID(ctx, documentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return shares, nil
}

// DeleteShare removes a share; the requester must be its creator and the
// token must belong to the given document
func (uc *shareUsecase) DeleteShare(ctx context.Context, userID, documentID, token string) error {
	share, err := uc.shareRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Share not found")
		}
		return apperror.Internal(err)
	}
	if share.UserID != userID || share.DocumentID != documentID {
		return apperror.Forbidden("You cannot delete this share")
	}

	if err := uc.shareRepo.Delete(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Share not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// resolve loads a live share by token. The expiry check runs on every
// resolution, not only at creation.
func (uc *shareUsecase) resolve(ctx context.Context, token string) (*domain.Share, error) {
	share, err := uc.shareRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Share link not found")
		}
		return nil, apperror.Internal(err)
	}
	if share.Expired(time.Now()) {
		return nil, apperror.Gone("Share link has expired")
	}
	return share, nil
}

// ResolveShare projects the shared document through the share's visibility
// configuration. Anyone holding the token may call this.
func (uc *shareUsecase) ResolveShare(ctx context.Context, token string) (*domain.SharedDocumentView, error) {
	share, err := uc.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	doc, err := uc.documentRepo.GetByID(ctx, share.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Legitimate race: document deleted after the share was created
			return nil, apperror.NotFound("Document no longer exists")
		}
		return nil, apperror.Internal(err)
	}

	// Company, position and editable are labeling, always included.
	// Content fields are copied only when flagged visible.
	view := &domain.SharedDocumentView{
		CompanyName: doc.CompanyName,
		Position:    doc.Position,
		Editable:    share.Editable,
		ExpiresAt:   share.ExpiresAt,
	}
	if share.ShowResume {
		view.ResumeMarkdown = &doc.ResumeMarkdown
	}
	if share.ShowCoverLetter {
		view.CoverLetterMarkdown = &doc.CoverLetterMarkdown
	}
	if share.ShowNotes {
		view.Notes = &doc.Notes
	}
	return view, nil
}

// UpdateSharedDocument applies content edits submitted through an editable
// share. A field is writable only when the share also exposes it: hidden
// fields are silently dropped even if supplied, so the edit path can never
// escalate beyond the configured visibility.
func (uc *shareUsecase) UpdateSharedDocument(ctx context.Context, token string, update domain.SharedDocumentUpdate) error {
	share, err := uc.resolve(ctx, token)
	if err != nil {
		return err
	}

	// Editable gate precedes any read or write of the document
	if !share.Editable {
		return apperror.Forbidden("This share is read-only")
	}

	doc, err := uc.documentRepo.GetByID(ctx, share.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Document no longer exists")
		}
		return apperror.Internal(err)
	}

	if update.ResumeMarkdown != nil && share.ShowResume {
		doc.ResumeMarkdown = *update.ResumeMarkdown
	}
	if update.CoverLetterMarkdown != nil && share.ShowCoverLetter {
		doc.CoverLetterMarkdown = *update.CoverLetterMarkdown
	}
	if update.Notes != nil && share.ShowNotes {
		doc.Notes = *update.Notes
	}

	if err := uc.documentRepo.Update(ctx, doc); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
