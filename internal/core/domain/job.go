package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// JobStatus tracks whether a job is still in progress or done.
type JobStatus string

const (
	JobInProgress JobStatus = "진행중"
	JobCompleted  JobStatus = "완료"
)

// PaymentStatus is derived from the job amounts and never set directly.
type PaymentStatus string

const (
	PaymentUnset   PaymentStatus = "미설정"
	PaymentUnpaid  PaymentStatus = "미납"
	PaymentPartial PaymentStatus = "부분"
	PaymentPaid    PaymentStatus = "완납"
)

// ComputePaymentStatus derives the payment state from the agreed amount and
// the amount paid so far, both in 만원 (10,000 won units).
func ComputePaymentStatus(amountMan, paidAmountMan int64) PaymentStatus {
	switch {
	case amountMan <= 0:
		return PaymentUnset
	case paidAmountMan <= 0:
		return PaymentUnpaid
	case paidAmountMan < amountMan:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

// OutsourceType marks a job as received from or given to a partner company.
type OutsourceType string

const (
	OutsourceNone     OutsourceType = "none"
	OutsourceReceived OutsourceType = "received"
	OutsourceGiven    OutsourceType = "given"
)

// Job is a single dispatch record: who worked which machine for which client,
// where, and for how much.
type Job struct {
	JobID     string `json:"jobID"`
	CompanyID string `json:"companyID"`

	JobDate time.Time `json:"jobDate"`
	JobTime string    `json:"jobTime"` // "HH:MM", free-form in older data

	WorkerID   *string `json:"workerID,omitempty"` // nullable: jobs may predate the worker's account
	WorkerName string  `json:"workerName"`

	MachineName   string `json:"machineName"`
	MachineNumber string `json:"machineNumber"`
	MachineAlias  string `json:"machineAlias"`

	ClientOwner  string `json:"clientOwner"`  // 원수급자
	ClientTenant string `json:"clientTenant"` // 임차인

	Location string    `json:"location"`
	Note     string    `json:"note"`
	Status   JobStatus `json:"status"`

	DurationType  string  `json:"durationType"`
	DurationHours float64 `json:"durationHours"`

	AmountMan     int64         `json:"amountMan"`
	PaidAmountMan int64         `json:"paidAmountMan"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	OutsourceType    OutsourceType `json:"outsourceType"`
	OutsourcePartner string        `json:"outsourcePartner"`

	IsSpare     bool `json:"isSpare"`
	ShareAmount bool `json:"shareAmount"`

	AuditFields
}

// IsOutsourced reports whether the job must be mirrored into a ledger.
func (j *Job) IsOutsourced() bool {
	return (j.OutsourceType == OutsourceReceived || j.OutsourceType == OutsourceGiven) &&
		strings.TrimSpace(j.OutsourcePartner) != ""
}

// RecomputePaymentStatus refreshes the derived payment status in place.
func (j *Job) RecomputePaymentStatus() {
	j.PaymentStatus = ComputePaymentStatus(j.AmountMan, j.PaidAmountMan)
}

// OutsourceAutoKey returns the stable key that links an outsourced job to its
// auto-generated ledger entry: "auto-" plus the first 16 hex characters of
// sha256(date|worker|machine_number|partner|direction), direction lowercased.
// Running it twice over unchanged job data always yields the same key.
func (j *Job) OutsourceAutoKey() string {
	return OutsourceAutoKey(j.JobDate, j.WorkerName, j.MachineNumber, j.OutsourcePartner, string(j.OutsourceType))
}

// OutsourceAutoKey computes the reconciliation key from its raw parts.
func OutsourceAutoKey(date time.Time, worker, machineNumber, partner, direction string) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s",
		date.Format("2006-01-02"), worker, machineNumber, partner, strings.ToLower(direction))
	sum := sha256.Sum256([]byte(payload))
	return "auto-" + hex.EncodeToString(sum[:])[:16]
}
