package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal/internal/dto"
	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

func eventsView() dto.TableView {
	return dto.TableView{
		Type:    models.ResourceEvents,
		Label:   "Events",
		Headers: []string{"Title", "Date"},
		Rows:    []dto.TableRow{{ID: 1, Name: "Fair", Cells: []string{"Fair", "2026-03-31"}}},
	}
}

func TestExportCSVByDefault(t *testing.T) {
	svc := NewExportService()
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC) }

	file, err := svc.Render(eventsView(), "")
	require.NoError(t, err)
	assert.Equal(t, "events-20260315-093000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "Title,Date\nFair,2026-03-31\n", string(file.Content))
}

func TestExportPDF(t *testing.T) {
	file, err := NewExportService().Render(eventsView(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := NewExportService().Render(eventsView(), "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
