package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/internal/usecase"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/markdown"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockShareUsecase struct {
	mock.Mock
}

func (m *MockShareUsecase) CreateOrUpdateShare(ctx context.Context, userID, documentID string, cfg domain.ShareConfig) (*domain.ShareResult, error) {
	args := m.Called(ctx, userID, documentID, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareResult), args.Error(1)
}

func (m *MockShareUsecase) GetLatestShare(ctx context.Context, userID, documentID string) (*domain.Share, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Share), args.Error(1)
}

func (m *MockShareUsecase) ListShares(ctx context.Context, userID, documentID string) ([]domain.Share, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Share), args.Error(1)
}

func (m *MockShareUsecase) DeleteShare(ctx context.Context, userID, documentID, token string) error {
	return m.Called(ctx, userID, documentID, token).Error(0)
}

func (m *MockShareUsecase) ResolveShare(ctx context.Context, token string) (*domain.SharedDocumentView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SharedDocumentView), args.Error(1)
}

func (m *MockShareUsecase) UpdateSharedDocument(ctx context.Context, token string, update domain.SharedDocumentUpdate) error {
	return m.Called(ctx, token, update).Error(0)
}

// fakeRenderer records the HTML it receives and returns canned PDF bytes
type fakeRenderer struct {
	lastHTML string
	calls    int
}

func (f *fakeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	f.calls++
	f.lastHTML = html
	return []byte("%PDF-1.7 fake"), nil
}

func (f *fakeRenderer) Close() error { return nil }

func sharedView(resume, cover *string) *domain.SharedDocumentView {
	return &domain.SharedDocumentView{
		CompanyName:         "Acme Corp",
		Position:            "Go Engineer",
		ResumeMarkdown:      resume,
		CoverLetterMarkdown: cover,
		ExpiresAt:           time.Now().Add(24 * time.Hour),
	}
}

func TestRenderMarkdown(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject blank input before any rendering", func(t *testing.T) {
		renderer := &fakeRenderer{}
		uc := usecase.NewExportUsecase(new(MockShareUsecase), markdown.NewFormatter(), renderer)

		_, err := uc.RenderMarkdown(ctx, "   \n\t ")
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		assert.Zero(t, renderer.calls)
	})

	t.Run("Should produce PDF bytes from a styled complete document", func(t *testing.T) {
		renderer := &fakeRenderer{}
		uc := usecase.NewExportUsecase(new(MockShareUsecase), markdown.NewFormatter(), renderer)

		out, err := uc.RenderMarkdown(ctx, "# Jane Doe\n\nGo engineer")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF"))

		// Renderer receives a self-contained HTML document
		assert.Contains(t, renderer.lastHTML, "<!DOCTYPE html>")
		assert.Contains(t, renderer.lastHTML, "<style>")
		assert.Contains(t, renderer.lastHTML, "<h1")
		assert.Contains(t, renderer.lastHTML, "Jane Doe")
	})

	t.Run("Should not pass raw HTML through to the renderer", func(t *testing.T) {
		renderer := &fakeRenderer{}
		uc := usecase.NewExportUsecase(new(MockShareUsecase), markdown.NewFormatter(), renderer)

		_, err := uc.RenderMarkdown(ctx, "hello <script>alert(1)</script>")
		assert.NoError(t, err)
		assert.NotContains(t, renderer.lastHTML, "<script>")
	})
}

func TestRenderSharedDocument(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("Should combine both sections with a page break between them", func(t *testing.T) {
		shareUC := new(MockShareUsecase)
		renderer := &fakeRenderer{}
		uc := usecase.NewExportUsecase(shareUC, markdown.NewFormatter(), renderer)

		shareUC.On("ResolveShare", ctx, "tok123").
			Return(sharedView(strPtr("# Resume"), strPtr("Dear team")), nil)

		out, filename, err := uc.RenderSharedDocument(ctx, "tok123", true, true)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF"))
		assert.Equal(t, "acme-corp-application.pdf", filename)

		// The separator renders as a horizontal rule between the sections
		assert.Contains(t, renderer.lastHTML, "<hr")
		assert.Contains(t, renderer.lastHTML, "Resume")
		assert.Contains(t, renderer.lastHTML, "Dear team")
	})

	t.Run("Should name a resume-only export after the company", func(t *testing.T) {
		shareUC := new(MockShareUsecase)
		uc := usecase.NewExportUsecase(shareUC, markdown.NewFormatter(), &fakeRenderer{})

		shareUC.On("ResolveShare", ctx, "tok123").
			Return(sharedView(strPtr("# Resume"), nil), nil)

		_, filename, err := uc.RenderSharedDocument(ctx, "tok123", true, true)
		assert.NoError(t, err)
		assert.Equal(t, "acme-corp-resume.pdf", filename)
	})

	t.Run("Should skip a visible section the caller did not request", func(t *testing.T) {
		shareUC := new(MockShareUsecase)
		renderer := &fakeRenderer{}
		uc := usecase.NewExportUsecase(shareUC, markdown.NewFormatter(), renderer)

		shareUC.On("ResolveShare", ctx, "tok123").
			Return(sharedView(strPtr("# Resume"), strPtr("Dear team")), nil)

		_, filename, err := uc.RenderSharedDocument(ctx, "tok123", false, true)
		assert.NoError(t, err)
		assert.Equal(t, "acme-corp-cover-letter.pdf", filename)
		assert.NotContains(t, renderer.lastHTML, "Resume")
	})

	t.Run("Should return 400 when nothing exportable remains", func(t *testing.T) {
		shareUC := new(MockShareUsecase)
		renderer := &fakeRenderer{}
		uc := usecase.NewExportUsecase(shareUC, markdown.NewFormatter(), renderer)

		// Share exposes notes only: no resume, no cover letter
		shareUC.On("ResolveShare", ctx, "tok123").Return(sharedView(nil, nil), nil)

		_, _, err := uc.RenderSharedDocument(ctx, "tok123", true, true)
		assert.Equal(t, http.StatusBadRequest, statusCode(t, err))
		assert.Zero(t, renderer.calls)
	})

	t.Run("Should propagate share resolution failures unchanged", func(t *testing.T) {
		shareUC := new(MockShareUsecase)
		uc := usecase.NewExportUsecase(shareUC, markdown.NewFormatter(), &fakeRenderer{})

		shareUC.On("ResolveShare", ctx, "expired").
			Return(nil, apperror.Gone("Share link has expired"))

		_, _, err := uc.RenderSharedDocument(ctx, "expired", true, true)
		assert.Equal(t, http.StatusGone, statusCode(t, err))
	})
}
