package calendar

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// CreateResult carries the calendar plus a preview of its first periods so
// the wizard can confirm the schedule without a second round trip.
type CreateResult struct {
	Calendar *Calendar `json:"calendar"`
	Periods  []Period  `json:"periods"`
}

const previewPeriods = 5

// Create generates the full year of periods eagerly and persists calendar
// and periods transactionally.
func (s *Service) Create(ctx context.Context, c Calendar) (*CreateResult, error) {
	periods, err := GeneratePeriods(c.StartDate, c.PayFrequency, c.PeriodNumber)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateCalendar(ctx, c, periods)
	if err != nil {
		return nil, err
	}
	preview := periods
	if len(preview) > previewPeriods {
		preview = preview[:previewPeriods]
	}
	return &CreateResult{Calendar: created, Periods: preview}, nil
}

func (s *Service) Get(ctx context.Context, calendarID string) (*Calendar, error) {
	return s.store.GetCalendar(ctx, calendarID)
}

func (s *Service) List(ctx context.Context, companyID string) ([]Calendar, error) {
	return s.store.ListCalendars(ctx, companyID)
}

func (s *Service) Update(ctx context.Context, calendarID, name string, daysBeforeClose int, payNaturalDays bool) (*Calendar, error) {
	return s.store.UpdateCalendar(ctx, calendarID, name, daysBeforeClose, payNaturalDays)
}

func (s *Service) Delete(ctx context.Context, calendarID string) error {
	return s.store.DeleteCalendar(ctx, calendarID)
}

func (s *Service) ListPeriods(ctx context.Context, calendarID string) ([]Period, error) {
	return s.store.ListPeriods(ctx, calendarID)
}
