package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/xuri/excelize/v2"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type exportService struct {
	BaseService
}

// NewExportService creates the CSV/XLSX renderer.
func NewExportService() portssvc.ExportSvcFacade {
	return &exportService{}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

var jobExportHeader = []string{
	"날짜", "시간", "기사", "장비명", "차량번호", "원수급자", "임차인",
	"현장", "상태", "금액(만원)", "입금(만원)", "결제", "외주", "외주처", "비고",
}

func jobExportRow(j *domain.Job) []string {
	outsource := ""
	switch j.OutsourceType {
	case domain.OutsourceReceived:
		outsource = domain.CategoryOutsrcReceived
	case domain.OutsourceGiven:
		outsource = domain.CategoryOutsrcGiven
	}
	return []string{
		j.JobDate.Format(dto.DateOnly),
		j.JobTime,
		j.WorkerName,
		j.MachineName,
		j.MachineNumber,
		j.ClientOwner,
		j.ClientTenant,
		j.Location,
		string(j.Status),
		strconv.FormatInt(j.AmountMan, 10),
		strconv.FormatInt(j.PaidAmountMan, 10),
		string(j.PaymentStatus),
		outsource,
		j.OutsourcePartner,
		j.Note,
	}
}

// exportFilename stamps the range onto the base name, e.g. "jobs_2026-01-01_2026-01-31.csv".
func exportFilename(base string, from, to *time.Time, ext string) string {
	name := base
	if from != nil {
		name += "_" + from.Format(dto.DateOnly)
	}
	if to != nil {
		name += "_" + to.Format(dto.DateOnly)
	}
	return name + ext
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	// BOM so Excel opens the Korean headers as UTF-8.
	buf.WriteString("\xEF\xBB\xBF")
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", lastHeaderCell, style)
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetColWidth(sheet, "A", lastCol, 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) JobsCSV(ctx context.Context, jobs []domain.Job, from, to *time.Time) (*portssvc.ExportFile, error) {
	rows := make([][]string, len(jobs))
	for i := range jobs {
		rows[i] = jobExportRow(&jobs[i])
	}
	data, err := renderCSV(jobExportHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render jobs CSV: %w", err)
	}
	return &portssvc.ExportFile{
		Filename: exportFilename("jobs", from, to, ".csv"),
		Mime:     mimeCSV,
		Data:     data,
	}, nil
}

func (s *exportService) JobsXLSX(ctx context.Context, jobs []domain.Job, from, to *time.Time) (*portssvc.ExportFile, error) {
	rows := make([][]string, len(jobs))
	for i := range jobs {
		rows[i] = jobExportRow(&jobs[i])
	}
	data, err := renderXLSX("작업목록", jobExportHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render jobs XLSX: %w", err)
	}
	return &portssvc.ExportFile{
		Filename: exportFilename("jobs", from, to, ".xlsx"),
		Mime:     mimeXLSX,
		Data:     data,
	}, nil
}

var ledgerExportHeader = []string{"날짜", "분류", "내용", "금액(원)", "출처"}

func ledgerExportRow(e *domain.LedgerEntry) []string {
	source := ""
	if e.IsAuto() {
		source = "자동"
	}
	return []string{
		e.EntryDate.Format(dto.DateOnly),
		e.Category,
		e.Description,
		e.Amount.StringFixed(0),
		source,
	}
}

func ledgerBaseName(direction domain.LedgerDirection) string {
	if direction == domain.LedgerExpense {
		return "expense"
	}
	return "income"
}

func (s *exportService) LedgerCSV(ctx context.Context, entries []domain.LedgerEntry, direction domain.LedgerDirection, from, to *time.Time) (*portssvc.ExportFile, error) {
	rows := make([][]string, len(entries))
	for i := range entries {
		rows[i] = ledgerExportRow(&entries[i])
	}
	data, err := renderCSV(ledgerExportHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render ledger CSV: %w", err)
	}
	return &portssvc.ExportFile{
		Filename: exportFilename(ledgerBaseName(direction), from, to, ".csv"),
		Mime:     mimeCSV,
		Data:     data,
	}, nil
}

func (s *exportService) LedgerXLSX(ctx context.Context, entries []domain.LedgerEntry, direction domain.LedgerDirection, from, to *time.Time) (*portssvc.ExportFile, error) {
	rows := make([][]string, len(entries))
	for i := range entries {
		rows[i] = ledgerExportRow(&entries[i])
	}
	sheet := "수입"
	if direction == domain.LedgerExpense {
		sheet = "지출"
	}
	data, err := renderXLSX(sheet, ledgerExportHeader, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render ledger XLSX: %w", err)
	}
	return &portssvc.ExportFile{
		Filename: exportFilename(ledgerBaseName(direction), from, to, ".xlsx"),
		Mime:     mimeXLSX,
		Data:     data,
	}, nil
}
