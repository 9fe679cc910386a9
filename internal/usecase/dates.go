package usecase

import "github.com/itnr/itnr-api/internal/domain"

// Period expansion defaults.
const (
	DefaultPeriodCandidates = 3
	DefaultPeriodStepDays   = 3
	MaxPeriodCandidates     = 7
)

// DateWindowNormalizer turns the date part of a request into concrete date pairs.
type DateWindowNormalizer struct {
	candidates int
	stepDays   int
}

// NewDateWindowNormalizer creates a normalizer. Candidates are clamped to
// [1, MaxPeriodCandidates]; non-positive values fall back to the defaults.
func NewDateWindowNormalizer(candidates, stepDays int) *DateWindowNormalizer {
	if candidates <= 0 {
		candidates = DefaultPeriodCandidates
	}
	if candidates > MaxPeriodCandidates {
		candidates = MaxPeriodCandidates
	}
	if stepDays <= 0 {
		stepDays = DefaultPeriodStepDays
	}
	return &DateWindowNormalizer{
		candidates: candidates,
		stepDays:   stepDays,
	}
}

// Normalize returns the date pairs to query, in order.
//
// An explicit pair is returned as is. A period yields one pair per candidate:
// departure = start + k*step days, return = departure + durationDays.
// Past dates are not rejected.
func (n *DateWindowNormalizer) Normalize(req domain.SearchRequest) ([]domain.DatePair, error) {
	if req.Period == nil {
		return n.explicit(req.DepartureDate, req.ReturnDate)
	}

	start, err := domain.ParseDate(req.Period.Start)
	if err != nil {
		return nil, domain.NewValidationError("period.start", "must be in YYYY-MM-DD format")
	}
	if req.Period.DurationDays < 1 {
		return nil, domain.NewValidationError("period.durationDays", "must be positive")
	}

	pairs := make([]domain.DatePair, 0, n.candidates)
	for k := 0; k < n.candidates; k++ {
		dep := start.AddDate(0, 0, k*n.stepDays)
		ret := dep.AddDate(0, 0, req.Period.DurationDays)
		pairs = append(pairs, domain.DatePair{
			DepartureDate: dep.Format(domain.DateLayout),
			ReturnDate:    ret.Format(domain.DateLayout),
		})
	}
	return pairs, nil
}

func (n *DateWindowNormalizer) explicit(departure, ret string) ([]domain.DatePair, error) {
	dep, err := domain.ParseDate(departure)
	if err != nil {
		return nil, domain.NewValidationError("departureDate", "must be in YYYY-MM-DD format")
	}
	if ret != "" {
		r, err := domain.ParseDate(ret)
		if err != nil {
			return nil, domain.NewValidationError("returnDate", "must be in YYYY-MM-DD format")
		}
		if !r.After(dep) {
			return nil, domain.NewValidationError("returnDate", "must be after departureDate")
		}
	}
	return []domain.DatePair{{DepartureDate: departure, ReturnDate: ret}}, nil
}
