package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/markdown"
	"go-applytrack-backend/pkg/pdf"
)

// documentTemplate wraps the formatted fragment in a complete HTML5 document
// with the stylesheet inlined, so the renderer needs no network access.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// defaultStylesheet is the print styling applied to every export
const defaultStylesheet = `body {
  font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
  font-size: 11pt;
  line-height: 1.5;
  color: #1a1a1a;
}
h1 { font-size: 18pt; margin-bottom: 0.3em; }
h2 { font-size: 14pt; border-bottom: 1px solid #ddd; padding-bottom: 0.2em; }
h3 { font-size: 12pt; }
hr { border: none; border-top: 1px solid #bbb; margin: 2em 0; page-break-after: always; }
ul, ol { padding-left: 1.4em; }
code { font-family: "SF Mono", Menlo, Consolas, monospace; font-size: 10pt; background: #f4f4f4; padding: 0 3px; }
pre { background: #f4f4f4; padding: 8px; overflow-x: hidden; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
a { color: #1a5276; text-decoration: none; }`

// sectionSeparator joins resume and cover letter in a combined export;
// it renders as a horizontal rule with a page break behind it.
const sectionSeparator = "\n\n---\n\n"

type exportUsecase struct {
	shareUC   domain.ShareUsecase
	formatter markdown.Formatter
	renderer  pdf.Renderer
}

// NewExportUsecase creates a new PDF export usecase
func NewExportUsecase(shareUC domain.ShareUsecase, formatter markdown.Formatter, renderer pdf.Renderer) domain.ExportUsecase {
	return &exportUsecase{
		shareUC:   shareUC,
		formatter: formatter,
		renderer:  renderer,
	}
}

// RenderMarkdown converts Markdown text into styled A4 PDF bytes
func (uc *exportUsecase) RenderMarkdown(ctx context.Context, md string) ([]byte, error) {
	// 1. Reject empty input before any rendering work is spent
	if strings.TrimSpace(md) == "" {
		return nil, apperror.BadRequest("Markdown content is required")
	}

	// 2. Markdown -> HTML fragment -> complete document
	fragment, err := uc.formatter.ToHTML(md)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	doc := composeDocument(fragment)

	// 3. HTML -> PDF
	pdfBytes, err := uc.renderer.Render(ctx, doc)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return pdfBytes, nil
}

// RenderSharedDocument renders the shared content selected by the caller.
// A section is included only when it is both requested and exposed by the
// share; expiry and visibility rules are the same as for the share view.
func (uc *exportUsecase) RenderSharedDocument(ctx context.Context, token string, includeResume, includeCoverLetter bool) ([]byte, string, error) {
	view, err := uc.shareUC.ResolveShare(ctx, token)
	if err != nil {
		return nil, "", err
	}

	var sections []string
	withResume := includeResume && view.ResumeMarkdown != nil
	withCover := includeCoverLetter && view.CoverLetterMarkdown != nil
	if withResume {
		sections = append(sections, *view.ResumeMarkdown)
	}
	if withCover {
		sections = append(sections, *view.CoverLetterMarkdown)
	}
	if len(sections) == 0 {
		return nil, "", apperror.BadRequest("No exportable content selected")
	}

	pdfBytes, err := uc.RenderMarkdown(ctx, strings.Join(sections, sectionSeparator))
	if err != nil {
		return nil, "", err
	}

	return pdfBytes, exportFilename(view.CompanyName, withResume, withCover), nil
}

func composeDocument(fragment string) string {
	return fmt.Sprintf(documentTemplate, defaultStylesheet, fragment)
}

// exportFilename derives the download name from the company plus a suffix
// describing the content composition
func exportFilename(company string, withResume, withCover bool) string {
	var suffix string
	switch {
	case withResume && withCover:
		suffix = "-application"
	case withCover:
		suffix = "-cover-letter"
	default:
		suffix = "-resume"
	}

	slug := slugify(company)
	if slug == "" {
		slug = "document"
	}
	return slug + suffix + ".pdf"
}

// slugify lowercases and collapses anything non-alphanumeric into dashes
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
