package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kataras/golog"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var (
	docxBreakPattern = regexp.MustCompile(`</w:p>|<w:tab/>|<w:br/>`)
	xmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// PreviewService describes a selected file for display. It never rejects a
// file: anything it cannot read is reported with zero pages and words.
type PreviewService interface {
	Describe(name string, data []byte) models.FileSummary
}

type previewService struct{}

func NewPreviewService() PreviewService {
	return &previewService{}
}

func KindOf(name string) models.DocumentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.KindPDF
	case ".docx":
		return models.KindDOCX
	default:
		return models.KindOther
	}
}

// Describe implements PreviewService.
func (p *previewService) Describe(name string, data []byte) models.FileSummary {
	summary := models.FileSummary{Kind: KindOf(name)}

	switch summary.Kind {
	case models.KindPDF:
		pages, words, err := p.inspectPDF(data)
		if err != nil {
			golog.Debugf("⚠️  Could not inspect PDF %s: %v", name, err)
			return summary
		}
		summary.Pages = pages
		summary.Words = words
	case models.KindDOCX:
		words, err := p.inspectDOCX(data)
		if err != nil {
			golog.Debugf("⚠️  Could not inspect DOCX %s: %v", name, err)
			return summary
		}
		summary.Words = words
	}

	return summary
}

func (p *previewService) inspectPDF(data []byte) (pages, words int, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages, words, err = 0, 0, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Count what the other pages have
			continue
		}
		words += len(strings.Fields(text))
	}

	return totalPage, words, nil
}

func (p *previewService) inspectDOCX(data []byte) (int, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	content := docxBreakPattern.ReplaceAllString(doc.Editable().GetContent(), " ")
	content = xmlTagPattern.ReplaceAllString(content, "")

	return len(strings.Fields(content)), nil
}
