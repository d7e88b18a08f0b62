package domain_test

import (
	"testing"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePaymentStatus(t *testing.T) {
	testCases := []struct {
		name     string
		amount   int64
		paid     int64
		expected domain.PaymentStatus
	}{
		{"no amount agreed", 0, 0, domain.PaymentUnset},
		{"negative amount", -5, 0, domain.PaymentUnset},
		{"no amount agreed but paid", 0, 50, domain.PaymentUnset},
		{"nothing paid", 100, 0, domain.PaymentUnpaid},
		{"negative paid", 100, -10, domain.PaymentUnpaid},
		{"partially paid", 100, 40, domain.PaymentPartial},
		{"exactly paid", 100, 100, domain.PaymentPaid},
		{"overpaid", 100, 150, domain.PaymentPaid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.ComputePaymentStatus(tc.amount, tc.paid))
		})
	}
}

func TestRecomputePaymentStatus(t *testing.T) {
	job := domain.Job{AmountMan: 300, PaidAmountMan: 100}
	job.RecomputePaymentStatus()
	assert.Equal(t, domain.PaymentPartial, job.PaymentStatus)

	job.PaidAmountMan = 300
	job.RecomputePaymentStatus()
	assert.Equal(t, domain.PaymentPaid, job.PaymentStatus)
}

func TestJobIsOutsourced(t *testing.T) {
	job := domain.Job{OutsourceType: domain.OutsourceReceived, OutsourcePartner: "대한크레인"}
	assert.True(t, job.IsOutsourced())

	job.OutsourceType = domain.OutsourceGiven
	assert.True(t, job.IsOutsourced())

	job.OutsourceType = domain.OutsourceNone
	assert.False(t, job.IsOutsourced())

	// A blank partner disqualifies the job even when the type is set.
	job = domain.Job{OutsourceType: domain.OutsourceReceived, OutsourcePartner: "   "}
	assert.False(t, job.IsOutsourced())
}

func TestOutsourceAutoKey(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	key := domain.OutsourceAutoKey(date, "김기사", "12가3456", "대한크레인", "received")
	require.True(t, len(key) == len("auto-")+16)
	assert.Equal(t, "auto-", key[:5])

	// Same inputs always yield the same key.
	again := domain.OutsourceAutoKey(date, "김기사", "12가3456", "대한크레인", "received")
	assert.Equal(t, key, again)

	// Direction is compared case-insensitively.
	upper := domain.OutsourceAutoKey(date, "김기사", "12가3456", "대한크레인", "RECEIVED")
	assert.Equal(t, key, upper)

	// Any changed part yields a different key.
	assert.NotEqual(t, key, domain.OutsourceAutoKey(date.AddDate(0, 0, 1), "김기사", "12가3456", "대한크레인", "received"))
	assert.NotEqual(t, key, domain.OutsourceAutoKey(date, "박기사", "12가3456", "대한크레인", "received"))
	assert.NotEqual(t, key, domain.OutsourceAutoKey(date, "김기사", "12가3456", "대한크레인", "given"))
}

func TestJobOutsourceAutoKeyMatchesRawParts(t *testing.T) {
	job := domain.Job{
		JobDate:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		WorkerName:       "김기사",
		MachineNumber:    "12가3456",
		OutsourcePartner: "대한크레인",
		OutsourceType:    domain.OutsourceGiven,
	}
	expected := domain.OutsourceAutoKey(job.JobDate, "김기사", "12가3456", "대한크레인", "given")
	assert.Equal(t, expected, job.OutsourceAutoKey())
}

func TestManToWon(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1500000).Equal(domain.ManToWon(150)))
	assert.True(t, decimal.Zero.Equal(domain.ManToWon(0)))
}

func TestEntryFromOutsourcedJob(t *testing.T) {
	job := domain.Job{
		JobID:            "job-1",
		CompanyID:        "company-1",
		JobDate:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		WorkerName:       "김기사",
		MachineNumber:    "12가3456",
		AmountMan:        150,
		OutsourceType:    domain.OutsourceReceived,
		OutsourcePartner: "대한크레인",
	}

	entry := domain.EntryFromOutsourcedJob(&job)
	assert.Equal(t, domain.LedgerIncome, entry.Direction)
	assert.Equal(t, domain.CategoryOutsrcReceived, entry.Category)
	assert.Equal(t, domain.SourceAutoOutsrcReceived, entry.Source)
	assert.Equal(t, "대한크레인", entry.Description)
	assert.True(t, decimal.NewFromInt(1500000).Equal(entry.Amount))
	assert.Equal(t, job.OutsourceAutoKey(), entry.AutoKey)
	require.NotNil(t, entry.JobID)
	assert.Equal(t, "job-1", *entry.JobID)
	assert.True(t, entry.IsAuto())

	job.OutsourceType = domain.OutsourceGiven
	entry = domain.EntryFromOutsourcedJob(&job)
	assert.Equal(t, domain.LedgerExpense, entry.Direction)
	assert.Equal(t, domain.CategoryOutsrcGiven, entry.Category)
	assert.Equal(t, domain.SourceAutoOutsrcGiven, entry.Source)
}
