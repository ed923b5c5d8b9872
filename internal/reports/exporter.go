package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders an event report in the requested format and returns the
// payload, a download filename and the content type.
type Exporter interface {
	Export(format string, data EventReportData) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, data EventReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		payload, err := e.exportCSV(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("event_%d_report_%s.csv", data.EventID, timestamp)
		return payload, filename, "text/csv", nil

	case FormatExcel:
		payload, err := e.exportExcel(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("event_%d_report_%s.xlsx", data.EventID, timestamp)
		return payload, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		payload, err := e.exportPDF(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("event_%d_report_%s.pdf", data.EventID, timestamp)
		return payload, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported report format: %s", format)
	}
}

//// ============================
/// CSV EXPORT
//// ============================

func (e *exporter) exportCSV(data EventReportData) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	meta := [][]string{
		{"Event", data.Title},
		{"Date", data.EventDate.Format("2006-01-02 15:04")},
		{"Location", data.Location},
		{"Attendees", strconv.Itoa(len(data.Attendances))},
		{"Reviews", strconv.FormatInt(data.ReviewCount, 10)},
		{"Average Rating", fmt.Sprintf("%.2f", data.AverageRating)},
		{},
	}
	for _, record := range meta {
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	headers := []string{"User ID", "Name", "Email", "Status", "Responded At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, a := range data.Attendances {
		record := []string{
			strconv.FormatUint(uint64(a.UserID), 10),
			a.DisplayName,
			a.Email,
			a.Status,
			a.RespondedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	if len(data.Reviews) > 0 {
		if err := writer.Write(nil); err != nil {
			return nil, err
		}
		if err := writer.Write([]string{"Reviewer", "Rating", "Comment", "Submitted At"}); err != nil {
			return nil, err
		}
		for _, r := range data.Reviews {
			record := []string{
				r.Reviewer,
				strconv.Itoa(r.Rating),
				r.Comment,
				r.SubmittedAt.Format("2006-01-02 15:04:05"),
			}
			if err := writer.Write(record); err != nil {
				return nil, err
			}
		}
	}

	// Important: Flush before getting bytes
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// EXCEL EXPORT
//// ============================

func (e *exporter) exportExcel(data EventReportData) ([]byte, error) {
	f := excelize.NewFile()

	attSheet := "Attendances"
	f.SetSheetName("Sheet1", attSheet)

	f.SetCellValue(attSheet, "A1", "Event")
	f.SetCellValue(attSheet, "B1", data.Title)
	f.SetCellValue(attSheet, "A2", "Date")
	f.SetCellValue(attSheet, "B2", data.EventDate.Format("2006-01-02 15:04"))
	f.SetCellValue(attSheet, "A3", "Location")
	f.SetCellValue(attSheet, "B3", data.Location)

	headers := []string{"User ID", "Name", "Email", "Status", "Responded At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c5", 'A'+i)
		f.SetCellValue(attSheet, cell, header)
	}

	for i, a := range data.Attendances {
		row := i + 6
		f.SetCellValue(attSheet, fmt.Sprintf("A%d", row), a.UserID)
		f.SetCellValue(attSheet, fmt.Sprintf("B%d", row), a.DisplayName)
		f.SetCellValue(attSheet, fmt.Sprintf("C%d", row), a.Email)
		f.SetCellValue(attSheet, fmt.Sprintf("D%d", row), a.Status)
		f.SetCellValue(attSheet, fmt.Sprintf("E%d", row), a.RespondedAt.Format("2006-01-02 15:04:05"))
	}

	revSheet := "Reviews"
	if _, err := f.NewSheet(revSheet); err != nil {
		return nil, err
	}

	f.SetCellValue(revSheet, "A1", "Average Rating")
	f.SetCellValue(revSheet, "B1", data.AverageRating)
	f.SetCellValue(revSheet, "A2", "Review Count")
	f.SetCellValue(revSheet, "B2", data.ReviewCount)

	revHeaders := []string{"Reviewer", "Rating", "Comment", "Submitted At"}
	for i, header := range revHeaders {
		cell := fmt.Sprintf("%c4", 'A'+i)
		f.SetCellValue(revSheet, cell, header)
	}

	for i, r := range data.Reviews {
		row := i + 5
		f.SetCellValue(revSheet, fmt.Sprintf("A%d", row), r.Reviewer)
		f.SetCellValue(revSheet, fmt.Sprintf("B%d", row), r.Rating)
		f.SetCellValue(revSheet, fmt.Sprintf("C%d", row), r.Comment)
		f.SetCellValue(revSheet, fmt.Sprintf("D%d", row), r.SubmittedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// PDF EXPORT
//// ============================

func (e *exporter) exportPDF(data EventReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Event Report: "+data.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Date: "+data.EventDate.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Location: "+data.Location)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Attendees: %d   Reviews: %d   Average rating: %.2f",
		len(data.Attendances), data.ReviewCount, data.AverageRating))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Attendances")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{18, 50, 60, 25, 37}
	headers := []string{"User ID", "Name", "Email", "Status", "Responded At"}

	// Print headers with borders
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// Print data rows with borders
	pdf.SetFont("Arial", "", 9)
	for _, a := range data.Attendances {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(a.UserID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, a.DisplayName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, a.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, a.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, a.RespondedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	if len(data.Reviews) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Reviews")
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 10)
		revWidths := []float64{50, 18, 85, 37}
		revHeaders := []string{"Reviewer", "Rating", "Comment", "Submitted At"}
		for i, h := range revHeaders {
			pdf.CellFormat(revWidths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, r := range data.Reviews {
			comment := r.Comment
			if len(comment) > 45 {
				comment = comment[:42] + "..."
			}
			pdf.CellFormat(revWidths[0], 6, r.Reviewer, "1", 0, "L", false, 0, "")
			pdf.CellFormat(revWidths[1], 6, strconv.Itoa(r.Rating), "1", 0, "C", false, 0, "")
			pdf.CellFormat(revWidths[2], 6, comment, "1", 0, "L", false, 0, "")
			pdf.CellFormat(revWidths[3], 6, r.SubmittedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
