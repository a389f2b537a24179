package models

// Status is the lifecycle stage of an application.
type Status string

const (
	StatusNotCompleted Status = "NOT_COMPLETED"
	StatusReview       Status = "REVIEW"
	StatusEligible     Status = "ELIGIBLE"
	StatusApproved     Status = "APPROVED"
	StatusRejected     Status = "REJECTED"
	StatusWithdrawn    Status = "WITHDRAWN"
)

// statusWeights orders statuses for list sorting, best first.
var statusWeights = map[Status]float64{
	StatusApproved:     1,
	StatusEligible:     0.7,
	StatusReview:       0.5,
	StatusNotCompleted: 0.3,
	StatusRejected:     0.2,
	StatusWithdrawn:    0.1,
}

// Weight returns the sorting weight of a status. Unknown statuses sort last.
func (s Status) Weight() float64 {
	return statusWeights[s]
}

// ScholarshipStatus is the lifecycle stage of a scholarship contract.
type ScholarshipStatus string

const (
	ScholarshipPending   ScholarshipStatus = "PENDING"
	ScholarshipApproved  ScholarshipStatus = "APPROVED"
	ScholarshipRejected  ScholarshipStatus = "REJECTED"
	ScholarshipWithdrawn ScholarshipStatus = "WITHDRAWN"
)
