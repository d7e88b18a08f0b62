package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
)

type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepository
	jobRepo    portsrepo.JobRepository
}

// NewReportingService creates the summary/aggregation service.
func NewReportingService(ledgerRepo portsrepo.LedgerRepository, jobRepo portsrepo.JobRepository) portssvc.ReportingSvcFacade {
	return &reportingService{ledgerRepo: ledgerRepo, jobRepo: jobRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) Summary(ctx context.Context, companyID string, from, to *time.Time) (*dto.SummaryResponse, error) {
	ledgers, err := s.ledgerRepo.Summarize(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ledgers: %w", err)
	}

	jobs, err := s.jobRepo.ListJobs(ctx, companyID, portsrepo.JobFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for summary: %w", err)
	}
	var outstandingMan int64
	for i := range jobs {
		switch jobs[i].PaymentStatus {
		case domain.PaymentUnpaid, domain.PaymentPartial:
			outstandingMan += jobs[i].AmountMan - jobs[i].PaidAmountMan
		}
	}

	resp := &dto.SummaryResponse{
		IncomeTotal:    ledgers.IncomeTotal,
		ExpenseTotal:   ledgers.ExpenseTotal,
		NetTotal:       ledgers.IncomeTotal.Sub(ledgers.ExpenseTotal),
		OutstandingMan: outstandingMan,
	}
	if from != nil {
		resp.From = from.Format(dto.DateOnly)
	}
	if to != nil {
		resp.To = to.Format(dto.DateOnly)
	}
	return resp, nil
}
