package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/internal/usecase"
	"go-applytrack-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) FetchByUserID(ctx context.Context, userID string, status string) ([]domain.Document, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func ownedDocument() *domain.Document {
	return &domain.Document{
		ID:          "doc1",
		UserID:      "user1",
		CompanyName: "Acme Corp",
		Position:    "Go Engineer",
		Status:      domain.StatusDraft,
	}
}

func TestDocumentOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return 403 when requester is not the owner", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("GetByID", ctx, "doc1").Return(ownedDocument(), nil)

		_, err := uc.GetDocument(ctx, "intruder", "doc1")
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, statusCode(t, err))
	})

	t.Run("Should return 404 when document does not exist", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		_, err := uc.GetDocument(ctx, "user1", "missing")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusCode(t, err))
	})

	t.Run("Should block delete for non-owners without touching the repo", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("GetByID", ctx, "doc1").Return(ownedDocument(), nil)

		err := uc.DeleteDocument(ctx, "intruder", "doc1")
		assert.Equal(t, http.StatusForbidden, statusCode(t, err))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCreateDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("Should force ownership from the authenticated identity", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Document")).Return(nil).Run(func(args mock.Arguments) {
			d := args.Get(1).(*domain.Document)
			assert.Equal(t, "user1", d.UserID)
			assert.Equal(t, domain.StatusDraft, d.Status)
		})

		doc := &domain.Document{
			UserID:      "hacker_try",
			CompanyName: "Acme Corp",
			Position:    "Go Engineer",
		}
		err := uc.CreateDocument(ctx, "user1", doc)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject missing required fields", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		err := uc.CreateDocument(ctx, "user1", &domain.Document{Position: "Go Engineer"})
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown status value", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		doc := &domain.Document{
			CompanyName: "Acme Corp",
			Position:    "Go Engineer",
			Status:      "Pondering",
		}
		err := uc.CreateDocument(ctx, "user1", doc)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
	})
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject an invalid status filter", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		_, err := uc.ListDocuments(ctx, "user1", "Pondering")
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		mockRepo.AssertNotCalled(t, "FetchByUserID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should pass a valid status filter through", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("FetchByUserID", ctx, "user1", domain.StatusApplied).Return([]domain.Document{}, nil)

		docs, err := uc.ListDocuments(ctx, "user1", domain.StatusApplied)
		assert.NoError(t, err)
		assert.Empty(t, docs)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateDocument(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("Should update only the supplied fields", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("GetByID", ctx, "doc1").Return(ownedDocument(), nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Document")).Return(nil)

		doc, err := uc.UpdateDocument(ctx, "user1", "doc1", domain.DocumentUpdate{
			Position: strPtr("Staff Engineer"),
			Notes:    strPtr("phone screen done"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Staff Engineer", doc.Position)
		assert.Equal(t, "phone screen done", doc.Notes)
		// Untouched fields keep their stored values
		assert.Equal(t, "Acme Corp", doc.CompanyName)
		assert.Equal(t, domain.StatusDraft, doc.Status)
	})

	t.Run("Should reject an invalid status in a partial update", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("GetByID", ctx, "doc1").Return(ownedDocument(), nil)

		_, err := uc.UpdateDocument(ctx, "user1", "doc1", domain.DocumentUpdate{
			Status: strPtr("Pondering"),
		})
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject status outside the enumeration before any repo call", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		err := uc.UpdateStatus(ctx, "user1", "doc1", "Pondering")
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should persist a valid status change", func(t *testing.T) {
		mockRepo := new(MockDocumentRepo)
		uc := usecase.NewDocumentUsecase(mockRepo, validator.New())

		mockRepo.On("GetByID", ctx, "doc1").Return(ownedDocument(), nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Document")).Return(nil).Run(func(args mock.Arguments) {
			d := args.Get(1).(*domain.Document)
			assert.Equal(t, domain.StatusOffer, d.Status)
		})

		err := uc.UpdateStatus(ctx, "user1", "doc1", domain.StatusOffer)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
