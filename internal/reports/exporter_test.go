package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleReportData() EventReportData {
	return EventReportData{
		EventID:   7,
		Title:     "Community cleanup",
		EventDate: time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC),
		Location:  "Central Park",
		Attendances: []AttendanceReportRow{
			{UserID: 10, DisplayName: "Maria", Email: "maria@example.com", Status: "confirmed", RespondedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
			{UserID: 11, DisplayName: "Pedro", Email: "pedro@example.com", Status: "cancelled", RespondedAt: time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)},
		},
		Reviews: []ReviewReportRow{
			{Reviewer: "Maria", Rating: 5, Comment: "Great event", SubmittedAt: time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC)},
		},
		AverageRating: 5,
		ReviewCount:   1,
	}
}

func TestExportCSV(t *testing.T) {
	payload, filename, contentType, err := NewExporter().Export(FormatCSV, sampleReportData())
	require.NoError(t, err)
	require.Equal(t, "text/csv", contentType)
	require.True(t, strings.HasSuffix(filename, ".csv"))

	body := string(payload)
	require.Contains(t, body, "Community cleanup")
	require.Contains(t, body, "maria@example.com")
	require.Contains(t, body, "confirmed")
	require.Contains(t, body, "Great event")
}

func TestExportExcel(t *testing.T) {
	payload, filename, contentType, err := NewExporter().Export(FormatExcel, sampleReportData())
	require.NoError(t, err)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	require.True(t, strings.HasSuffix(filename, ".xlsx"))
	require.NotEmpty(t, payload)
}

func TestExportPDF(t *testing.T) {
	payload, filename, contentType, err := NewExporter().Export(FormatPDF, sampleReportData())
	require.NoError(t, err)
	require.Equal(t, "application/pdf", contentType)
	require.True(t, strings.HasSuffix(filename, ".pdf"))
	require.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestExportUnknownFormat(t *testing.T) {
	_, _, _, err := NewExporter().Export("docx", sampleReportData())
	require.Error(t, err)
}
