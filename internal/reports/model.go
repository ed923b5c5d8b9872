package reports

import "time"

// Supported export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// AttendanceReportRow is one attendee line in an event report.
type AttendanceReportRow struct {
	UserID      uint
	DisplayName string
	Email       string
	Status      string
	RespondedAt time.Time
}

// ReviewReportRow is one review line in an event report.
type ReviewReportRow struct {
	Reviewer    string
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

// EventReportData is everything the exporter needs to render a report.
type EventReportData struct {
	EventID       uint
	Title         string
	EventDate     time.Time
	Location      string
	Attendances   []AttendanceReportRow
	Reviews       []ReviewReportRow
	AverageRating float64
	ReviewCount   int64
}
