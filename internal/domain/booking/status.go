package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusScheduled
}

// ParseTarget accepts only the statuses staff may move a booking to.
func ParseTarget(s string) (Status, error) {
	switch Status(s) {
	case StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// CanTransition: scheduled is the only source state and never a target.
func CanTransition(from, to Status) error {
	if from != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	if to != StatusCompleted && to != StatusCancelled {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}
