package domain

import "context"

type ExportUsecase interface {
	RenderMarkdown(ctx context.Context, markdown string) ([]byte, error)
	RenderSharedDocument(ctx context.Context, token string, includeResume, includeCoverLetter bool) (pdf []byte, filename string, err error)
}
