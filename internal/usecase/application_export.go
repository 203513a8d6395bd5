package usecase

import (
	"fmt"
	"io"

	"go-jobboard-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Applications"

var exportColumns = []struct {
	header string
	width  float64
	value  func(a domain.ApplicationWithApplicant) any
}{
	{"APPLICATION ID", 16, func(a domain.ApplicationWithApplicant) any { return a.ID }},
	{"JOB ID", 10, func(a domain.ApplicationWithApplicant) any { return a.JobID }},
	{"JOB TITLE", 32, func(a domain.ApplicationWithApplicant) any { return a.JobTitle }},
	{"APPLICANT", 24, func(a domain.ApplicationWithApplicant) any { return a.Applicant.Name }},
	{"EMAIL", 30, func(a domain.ApplicationWithApplicant) any { return a.Applicant.Email }},
	{"STATUS", 12, func(a domain.ApplicationWithApplicant) any { return a.Status }},
	{"CV", 28, func(a domain.ApplicationWithApplicant) any { return derefString(a.CV) }},
	{"COVER LETTER", 48, func(a domain.ApplicationWithApplicant) any { return derefString(a.CoverLetter) }},
	{"APPLIED AT", 20, func(a domain.ApplicationWithApplicant) any { return a.AppliedAt.UTC().Format("2006-01-02 15:04") }},
}

// writeApplicationsWorkbook renders apps as a single-sheet xlsx file.
func writeApplicationsWorkbook(apps []domain.ApplicationWithApplicant, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col.header); err != nil {
			return err
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(exportSheet, name, name, col.width)
	}

	// Dark blue header with white text
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err := f.SetCellStyle(exportSheet, "A1", endCell, headerStyle); err != nil {
		return err
	}

	for rowIdx, app := range apps {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(exportSheet, cell, col.value(app)); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
