package dto

import (
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
)

// DateOnly is the wire format for job and ledger dates.
const DateOnly = "2006-01-02"

// CreateJobRequest records a new dispatch.
type CreateJobRequest struct {
	JobDate string `json:"jobDate" binding:"required,datetime=2006-01-02"`
	JobTime string `json:"jobTime"`

	WorkerID   string `json:"workerID"`
	WorkerName string `json:"workerName" binding:"required"`

	MachineID     string `json:"machineID"`
	MachineName   string `json:"machineName"`
	MachineNumber string `json:"machineNumber"`
	MachineAlias  string `json:"machineAlias"`

	ClientOwner  string `json:"clientOwner"`
	ClientTenant string `json:"clientTenant"`

	Location string `json:"location" binding:"required"`
	Note     string `json:"note"`

	DurationType  string  `json:"durationType"`
	DurationHours float64 `json:"durationHours"`

	AmountMan     int64 `json:"amountMan" binding:"min=0"`
	PaidAmountMan int64 `json:"paidAmountMan" binding:"min=0"`

	OutsourceType    domain.OutsourceType `json:"outsourceType" binding:"omitempty,oneof=none received given"`
	OutsourcePartner string               `json:"outsourcePartner"`

	IsSpare     bool `json:"isSpare"`
	ShareAmount bool `json:"shareAmount"`
}

// UpdateJobRequest updates a dispatch. Nil fields are left unchanged.
type UpdateJobRequest struct {
	JobDate *string `json:"jobDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	JobTime *string `json:"jobTime,omitempty"`

	WorkerID   *string `json:"workerID,omitempty"`
	WorkerName *string `json:"workerName,omitempty"`

	MachineName   *string `json:"machineName,omitempty"`
	MachineNumber *string `json:"machineNumber,omitempty"`
	MachineAlias  *string `json:"machineAlias,omitempty"`

	ClientOwner  *string `json:"clientOwner,omitempty"`
	ClientTenant *string `json:"clientTenant,omitempty"`

	Location *string           `json:"location,omitempty"`
	Note     *string           `json:"note,omitempty"`
	Status   *domain.JobStatus `json:"status,omitempty" binding:"omitempty,oneof=진행중 완료"`

	DurationType  *string  `json:"durationType,omitempty"`
	DurationHours *float64 `json:"durationHours,omitempty"`

	AmountMan     *int64 `json:"amountMan,omitempty" binding:"omitempty,min=0"`
	PaidAmountMan *int64 `json:"paidAmountMan,omitempty" binding:"omitempty,min=0"`

	OutsourceType    *domain.OutsourceType `json:"outsourceType,omitempty" binding:"omitempty,oneof=none received given"`
	OutsourcePartner *string               `json:"outsourcePartner,omitempty"`

	IsSpare     *bool `json:"isSpare,omitempty"`
	ShareAmount *bool `json:"shareAmount,omitempty"`
}

// ListJobsParams are the optional job list filters, bound from the query
// string. PageToken continues a previous listing.
type ListJobsParams struct {
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Worker        string `form:"worker"`
	MachineNumber string `form:"machine"`
	Client        string `form:"client"`
	Status        string `form:"status" binding:"omitempty,oneof=진행중 완료"`
	PaymentStatus string `form:"payment" binding:"omitempty,oneof=미설정 미납 부분 완납"`
	OutsourceType string `form:"outsource" binding:"omitempty,oneof=none received given"`
	Query         string `form:"q"`
	Limit         int    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	PageToken     string `form:"pageToken"`
}

// RecordPaymentRequest sets the amount paid so far.
type RecordPaymentRequest struct {
	PaidAmountMan int64 `json:"paidAmountMan" binding:"min=0"`
}

// BulkStatusRequest marks a set of jobs completed.
type BulkStatusRequest struct {
	JobIDs []string `json:"jobIDs" binding:"required,min=1"`
}

// JobResponse is the API shape of a job.
type JobResponse struct {
	JobID   string `json:"jobID"`
	JobDate string `json:"jobDate"`
	JobTime string `json:"jobTime"`

	WorkerID   *string `json:"workerID,omitempty"`
	WorkerName string  `json:"workerName"`

	MachineName   string `json:"machineName"`
	MachineNumber string `json:"machineNumber"`
	MachineAlias  string `json:"machineAlias"`

	ClientOwner  string `json:"clientOwner"`
	ClientTenant string `json:"clientTenant"`

	Location string           `json:"location"`
	Note     string           `json:"note"`
	Status   domain.JobStatus `json:"status"`

	DurationType  string  `json:"durationType"`
	DurationHours float64 `json:"durationHours"`

	AmountMan     int64                `json:"amountMan"`
	PaidAmountMan int64                `json:"paidAmountMan"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`

	OutsourceType    domain.OutsourceType `json:"outsourceType"`
	OutsourcePartner string               `json:"outsourcePartner,omitempty"`

	IsSpare     bool `json:"isSpare"`
	ShareAmount bool `json:"shareAmount"`

	CreatedAt time.Time `json:"createdAt"`
}

// ListJobsResponse wraps one page of jobs.
type ListJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	NextToken string        `json:"nextToken,omitempty"`
}

// CalendarDay aggregates one day of the calendar view.
type CalendarDay struct {
	Date          string `json:"date"`
	JobCount      int    `json:"jobCount"`
	CompletedJobs int    `json:"completedJobs"`
	AmountMan     int64  `json:"amountMan"`
}

// ToJobResponse maps a domain job to its API shape.
func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		JobID:            j.JobID,
		JobDate:          j.JobDate.Format(DateOnly),
		JobTime:          j.JobTime,
		WorkerID:         j.WorkerID,
		WorkerName:       j.WorkerName,
		MachineName:      j.MachineName,
		MachineNumber:    j.MachineNumber,
		MachineAlias:     j.MachineAlias,
		ClientOwner:      j.ClientOwner,
		ClientTenant:     j.ClientTenant,
		Location:         j.Location,
		Note:             j.Note,
		Status:           j.Status,
		DurationType:     j.DurationType,
		DurationHours:    j.DurationHours,
		AmountMan:        j.AmountMan,
		PaidAmountMan:    j.PaidAmountMan,
		PaymentStatus:    j.PaymentStatus,
		OutsourceType:    j.OutsourceType,
		OutsourcePartner: j.OutsourcePartner,
		IsSpare:          j.IsSpare,
		ShareAmount:      j.ShareAmount,
		CreatedAt:        j.CreatedAt,
	}
}

// ToJobResponses maps a slice of jobs.
func ToJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, len(jobs))
	for i := range jobs {
		out[i] = ToJobResponse(&jobs[i])
	}
	return out
}

// ToSharedJobResponses maps jobs for the public shared view. Amounts are
// blanked for jobs whose owner chose not to share them.
func ToSharedJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, len(jobs))
	for i := range jobs {
		out[i] = ToJobResponse(&jobs[i])
		if !jobs[i].ShareAmount {
			out[i].AmountMan = 0
			out[i].PaidAmountMan = 0
			out[i].PaymentStatus = ""
		}
	}
	return out
}
