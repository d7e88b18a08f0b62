package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/craneworks/craneops_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportJob() domain.Job {
	return domain.Job{
		JobID:            "job-1",
		CompanyID:        "company-1",
		JobDate:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		JobTime:          "09:00",
		WorkerName:       "김기사",
		MachineName:      "25톤 카고크레인",
		MachineNumber:    "12가3456",
		ClientOwner:      "한빛건설",
		ClientTenant:     "서울타워현장",
		Location:         "서울 강남구",
		Status:           domain.JobCompleted,
		AmountMan:        150,
		PaidAmountMan:    100,
		PaymentStatus:    domain.PaymentPartial,
		OutsourceType:    domain.OutsourceReceived,
		OutsourcePartner: "대한크레인",
		Note:             "야간작업",
	}
}

func TestJobsCSV(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExportService()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	file, err := svc.JobsCSV(ctx, []domain.Job{exportJob()}, &from, &to)
	require.NoError(t, err)

	assert.Equal(t, "jobs_2025-03-01_2025-03-31.csv", file.Filename)
	assert.Contains(t, file.Mime, "text/csv")

	// UTF-8 BOM so Excel renders the Korean headers.
	require.True(t, bytes.HasPrefix(file.Data, []byte("\xEF\xBB\xBF")))

	records, err := csv.NewReader(bytes.NewReader(file.Data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "날짜", records[0][0])
	assert.Equal(t, "2025-03-14", records[1][0])
	assert.Equal(t, "김기사", records[1][2])
	assert.Equal(t, "150", records[1][9])
	assert.Equal(t, "100", records[1][10])
	assert.Equal(t, string(domain.PaymentPartial), records[1][11])
	assert.Equal(t, domain.CategoryOutsrcReceived, records[1][12])
}

func TestJobsXLSX(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExportService()

	file, err := svc.JobsXLSX(ctx, []domain.Job{exportJob()}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "jobs.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("작업목록")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "날짜", rows[0][0])
	assert.Equal(t, "2025-03-14", rows[1][0])
	assert.Equal(t, "대한크레인", rows[1][13])
}

func TestLedgerCSVMarksAutoEntries(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExportService()

	entries := []domain.LedgerEntry{
		{
			EntryDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Category:    domain.CategoryOutsrcReceived,
			Description: "대한크레인",
			Amount:      decimal.NewFromInt(1500000),
			Source:      domain.SourceAutoOutsrcReceived,
			AutoKey:     "auto-0123456789abcdef",
		},
		{
			EntryDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			Category:    "기타",
			Description: "수기입력",
			Amount:      decimal.NewFromInt(50000),
		},
	}

	file, err := svc.LedgerCSV(ctx, entries, domain.LedgerIncome, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "income.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1500000", records[1][3])
	assert.Equal(t, "자동", records[1][4])
	assert.Equal(t, "", records[2][4])
}

func TestLedgerXLSXSheetFollowsDirection(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExportService()

	file, err := svc.LedgerXLSX(ctx, []domain.LedgerEntry{}, domain.LedgerExpense, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "expense.xlsx", file.Filename)
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("지출")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "날짜", rows[0][0])
}
