package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/campus-portal/internal/dto"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
	"github.com/noah-isme/campus-portal/pkg/export"
)

// Export formats supported for admin tables.
const (
	ExportCSV = "csv"
	ExportPDF = "pdf"
)

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders an admin table to CSV or PDF.
type ExportService struct {
	csv tableRenderer
	pdf tableRenderer
	now func() time.Time
}

// NewExportService constructs the service with the default renderers.
func NewExportService() *ExportService {
	return &ExportService{csv: export.NewCSVExporter(), pdf: export.NewPDFExporter(), now: time.Now}
}

// Render exports view in format (blank means csv).
func (s *ExportService) Render(view dto.TableView, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportCSV
	}

	table := export.Table{
		Title:   fmt.Sprintf("%s (%d)", view.Label, len(view.Rows)),
		Headers: view.Headers,
		Rows:    make([][]string, 0, len(view.Rows)),
	}
	for _, row := range view.Rows {
		table.Rows = append(table.Rows, row.Cells)
	}

	var (
		renderer    tableRenderer
		contentType string
	)
	switch format {
	case ExportCSV:
		renderer, contentType = s.csv, "text/csv"
	case ExportPDF:
		renderer, contentType = s.pdf, "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}

	content, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", view.Type, s.now().UTC().Format("20060102-150405"), format),
		ContentType: contentType,
		Content:     content,
	}, nil
}
