package period

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// PeriodService administers pay periods: creation with overlap rejection,
// and the status transitions the approval workflow drives. Generation-time
// status resets live in the payroll service, not here.
type PeriodService struct {
	periodRepo       period.PayPeriodRepository
	standardDayHours float64
}

func NewPeriodService(periodRepo period.PayPeriodRepository, standardDayHours float64) *PeriodService {
	return &PeriodService{periodRepo: periodRepo, standardDayHours: standardDayHours}
}

func (s *PeriodService) Create(ctx context.Context, req period.CreatePayPeriodRequest) (period.PayPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return period.PayPeriodResponse{}, err
	}

	start, _ := validator.ParseDate(req.StartDate)
	end, _ := validator.ParseDate(req.EndDate)

	created, err := s.periodRepo.Create(ctx, period.PayPeriod{
		Name:          req.Name,
		StartDate:     start,
		EndDate:       end,
		WorkingDays:   req.WorkingDays,
		ExpectedHours: float64(req.WorkingDays) * s.standardDayHours,
		Status:        period.PeriodStatusDraft,
	})
	if err != nil {
		return period.PayPeriodResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *PeriodService) Get(ctx context.Context, id string) (period.PayPeriodResponse, error) {
	p, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return period.PayPeriodResponse{}, err
	}
	return mapToResponse(p), nil
}

func (s *PeriodService) List(ctx context.Context) ([]period.PayPeriodResponse, error) {
	periods, err := s.periodRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]period.PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, mapToResponse(p))
	}
	return result, nil
}

// UpdateStatus advances the period through the approval workflow. Only
// forward transitions are allowed here; dropping back to draft is what
// regeneration does.
func (s *PeriodService) UpdateStatus(ctx context.Context, id string, req period.UpdatePeriodStatusRequest) (period.PayPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return period.PayPeriodResponse{}, err
	}

	p, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return period.PayPeriodResponse{}, err
	}

	next := period.PeriodStatus(req.Status)
	if !transitionAllowed(p.Status, next) {
		return period.PayPeriodResponse{}, fmt.Errorf("%s -> %s: %w", p.Status, next, period.ErrInvalidTransition)
	}

	if err := s.periodRepo.UpdateStatus(ctx, id, next); err != nil {
		return period.PayPeriodResponse{}, err
	}
	p.Status = next

	return mapToResponse(p), nil
}

func transitionAllowed(from, to period.PeriodStatus) bool {
	switch from {
	case period.PeriodStatusDraft:
		return to == period.PeriodStatusSentForReview
	case period.PeriodStatusSentForReview:
		return to == period.PeriodStatusCompleted || to == period.PeriodStatusDraft
	}
	return false
}

func mapToResponse(p period.PayPeriod) period.PayPeriodResponse {
	return period.PayPeriodResponse{
		ID:            p.ID,
		Name:          p.Name,
		StartDate:     p.StartDate.Format("2006-01-02"),
		EndDate:       p.EndDate.Format("2006-01-02"),
		WorkingDays:   p.WorkingDays,
		ExpectedHours: p.ExpectedHours,
		Status:        string(p.Status),
	}
}
