package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

// exportDateFormat matches the original report's locale date rendering.
const exportDateFormat = "1/2/2006"

var exportHeader = []string{"Date", "Student Name", "Student Email", "Course", "Rating", "Message"}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.repo.Feedback().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback for export: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportHeader, ","))
	buf.WriteByte('\n')

	for _, record := range records {
		row := exportRow(record)
		// Free-text cells are flattened, not quoted, so the document
		// stays a plain one-line-per-record report.
		for i, cell := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(sanitizeCell(cell))
		}
		buf.WriteByte('\n')
	}

	s.logger.Info("Feedback exported", "format", "csv", "rows", len(records))

	return buf.Bytes(), nil
}

func (s *exportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	records, err := s.repo.Feedback().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Feedback"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i, record := range records {
		row := exportRow(record)
		cells := []interface{}{row[0], row[1], row[2], row[3], record.Rating, row[5]}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell address: %w", err)
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write export row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Feedback exported", "format", "xlsx", "rows", len(records))

	return buf.Bytes(), nil
}

// exportRow renders one feedback record into its report columns.
func exportRow(record *models.Feedback) [6]string {
	studentName, studentEmail := "", ""
	if record.Student != nil {
		studentName = record.Student.Name
		studentEmail = record.Student.Email
	}
	courseName := ""
	if record.Course != nil {
		courseName = record.Course.Name
	}
	return [6]string{
		record.CreatedAt.Format(exportDateFormat),
		studentName,
		studentEmail,
		courseName,
		fmt.Sprintf("%d", record.Rating),
		record.Message,
	}
}

// sanitizeCell strips the characters that would break the flat layout.
func sanitizeCell(cell string) string {
	cell = strings.ReplaceAll(cell, ",", " ")
	cell = strings.ReplaceAll(cell, "\r\n", " ")
	cell = strings.ReplaceAll(cell, "\n", " ")
	cell = strings.ReplaceAll(cell, "\r", " ")
	return cell
}
