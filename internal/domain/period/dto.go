package period

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

type CreatePayPeriodRequest struct {
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

func (r *CreatePayPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a YYYY-MM-DD date"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a YYYY-MM-DD date"})
	}
	if validator.IsValidDate(r.StartDate) && validator.IsValidDate(r.EndDate) {
		start, _ := validator.ParseDate(r.StartDate)
		end, _ := validator.ParseDate(r.EndDate)
		if !start.Before(end) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be after start_date"})
		}
	}
	if r.WorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePeriodStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdatePeriodStatusRequest) Validate() error {
	switch PeriodStatus(r.Status) {
	case PeriodStatusDraft, PeriodStatusSentForReview, PeriodStatusCompleted:
		return nil
	}
	return validator.ValidationErrors{{Field: "status", Message: "must be draft, sent_for_review or completed"}}
}

type PayPeriodResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	WorkingDays   int     `json:"working_days"`
	ExpectedHours float64 `json:"expected_hours"`
	Status        string  `json:"status"`
}
