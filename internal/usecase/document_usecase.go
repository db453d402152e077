package usecase

import (
	"context"
	"errors"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type documentUsecase struct {
	documentRepo domain.DocumentRepository
	validate     *validator.Validate
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(documentRepo domain.DocumentRepository, validate *validator.Validate) domain.DocumentUsecase {
	return &documentUsecase{
		documentRepo: documentRepo,
		validate:     validate,
	}
}

// getOwned loads a document and verifies the requester owns it.
// Every mutating or reading operation goes through this gate.
func (uc *documentUsecase) getOwned(ctx context.Context, userID, id string) (*domain.Document, error) {
	doc, err := uc.documentRepo.GetByID(ctx, id)
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

// CreateDocument validates and stores a new document owned by userID
func (uc *documentUsecase) CreateDocument(ctx context.Context, userID string, doc *domain.Document) error {
	// 1. Force ownership from the authenticated identity, never from the payload
	doc.UserID = userID

	// 2. Status defaults to Draft when unspecified
	if doc.Status == "" {
		doc.Status = domain.StatusDraft
	}

	// 3. Validate
	if err := uc.validate.Struct(doc); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if err := uc.documentRepo.Create(ctx, doc); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetDocument returns one document, owner only
func (uc *documentUsecase) GetDocument(ctx context.Context, userID, id string) (*domain.Document, error) {
	return uc.getOwned(ctx, userID, id)
}

// ListDocuments returns the caller's documents, optionally filtered by status
func (uc *documentUsecase) ListDocuments(ctx context.Context, userID, status string) ([]domain.Document, error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, apperror.BadRequest("Invalid status filter")
	}

	documents, err := uc.documentRepo.FetchByUserID(ctx, userID, status)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return documents, nil
}

// UpdateDocument applies a whitelisted partial update to an owned document
func (uc *documentUsecase) UpdateDocument(ctx context.Context, userID, id string, update domain.DocumentUpdate) (*domain.Document, error) {
	// 1. Ownership check
	doc, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// 2. Apply only the whitelisted fields that were supplied
	if update.CompanyName != nil {
		doc.CompanyName = *update.CompanyName
	}
	if update.Position != nil {
		doc.Position = *update.Position
	}
	if update.ResumeMarkdown != nil {
		doc.ResumeMarkdown = *update.ResumeMarkdown
	}
	if update.CoverLetterMarkdown != nil {
		doc.CoverLetterMarkdown = *update.CoverLetterMarkdown
	}
	if update.Status != nil {
		if !domain.ValidStatus(*update.Status) {
			return nil, apperror.BadRequest("Invalid status. Must be: Draft, Applied, Interviewing, Offer, or Rejected")
		}
		doc.Status = *update.Status
	}
	if update.Notes != nil {
		doc.Notes = *update.Notes
	}

	// 3. Validate the merged result
	if err := uc.validate.Struct(doc); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := uc.documentRepo.Update(ctx, doc); err != nil {
		return nil, apperror.Internal(err)
	}
	return doc, nil
}

// UpdateStatus updates only the lifecycle status of an owned document
func (uc *documentUsecase) UpdateStatus(ctx context.Context, userID, id, status string) error {
	// 1. Validate status against the enumeration
	if !domain.ValidStatus(status) {
		return apperror.BadRequest("Invalid status. Must be: Draft, Applied, Interviewing, Offer, or Rejected")
	}

	// 2. Ownership check
	doc, err := uc.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	doc.Status = status
	if err := uc.documentRepo.Update(ctx, doc); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// DeleteDocument removes an owned document permanently
func (uc *documentUsecase) DeleteDocument(ctx context.Context, userID, id string) error {
	if _, err := uc.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := uc.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Document not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
