package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nomina/internal/domain/incidence"
	"nomina/internal/domain/notifications"
)

type Service struct {
	store      *Store
	incidences *incidence.Store
}

func NewService(store *Store, incidences *incidence.Store) *Service {
	return &Service{store: store, incidences: incidences}
}

// CreateDraft opens a payroll run in DRAFT, building one item per employee
// from the period's approved incidences.
func (s *Service) CreateDraft(ctx context.Context, companyID, calendarID, periodLabel, createdBy string, from, to time.Time) (*Payroll, error) {
	approved, err := s.incidences.ApprovedInRange(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	byEmployee := map[string]Item{}
	var order []string
	for _, inc := range approved {
		item, ok := byEmployee[inc.EmployeeID]
		if !ok {
			item = Item{EmployeeID: inc.EmployeeID}
			order = append(order, inc.EmployeeID)
		}
		item.Amount = item.Amount.Add(inc.Amount)
		byEmployee[inc.EmployeeID] = item
	}
	items := make([]Item, 0, len(order))
	for _, id := range order {
		items = append(items, byEmployee[id])
	}

	return s.store.CreatePayroll(ctx, Payroll{
		CompanyID:   companyID,
		CalendarID:  calendarID,
		PeriodLabel: periodLabel,
		CreatedBy:   createdBy,
	}, items)
}

func (s *Service) Get(ctx context.Context, payrollID string) (*Payroll, error) {
	return s.store.GetPayroll(ctx, payrollID)
}

func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]Payroll, error) {
	return s.store.ListPayrolls(ctx, companyID, limit, offset)
}

func (s *Service) Items(ctx context.Context, payrollID string) ([]Item, error) {
	return s.store.ListItems(ctx, payrollID)
}

// Submit hands a draft over for client authorization.
func (s *Service) Submit(ctx context.Context, payrollID string) (*Payroll, error) {
	p, err := s.store.GetPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if !CanSubmit(p.Status) {
		return nil, ErrInvalidState
	}
	return s.store.SetStatus(ctx, payrollID, StatusPendingAuthorization)
}

// Approve authorizes the run and broadcasts to every active operator.
func (s *Service) Approve(ctx context.Context, payrollID string) (*Payroll, []notifications.Event, error) {
	p, err := s.store.GetPayroll(ctx, payrollID)
	if err != nil {
		return nil, nil, err
	}
	if !CanApprove(p.Status) {
		return nil, nil, ErrInvalidState
	}
	updated, err := s.store.SetStatus(ctx, payrollID, StatusAuthorized)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.broadcast(ctx, p,
		notifications.TypePayrollAuthorized,
		"Nómina autorizada",
		fmt.Sprintf("La nómina del periodo %s fue autorizada.", p.PeriodLabel))
	if err != nil {
		return nil, nil, err
	}
	return updated, events, nil
}

// Reject returns the run to DRAFT for rework; there is no terminal rejected
// state.
func (s *Service) Reject(ctx context.Context, payrollID, reason string) (*Payroll, []notifications.Event, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, nil, ErrReasonMissing
	}
	p, err := s.store.GetPayroll(ctx, payrollID)
	if err != nil {
		return nil, nil, err
	}
	if !CanReject(p.Status) {
		return nil, nil, ErrInvalidState
	}
	updated, err := s.store.SetStatus(ctx, payrollID, StatusDraft)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.broadcast(ctx, p,
		notifications.TypePayrollReturned,
		"Nómina devuelta",
		fmt.Sprintf("La nómina del periodo %s fue devuelta: %s", p.PeriodLabel, reason))
	if err != nil {
		return nil, nil, err
	}
	return updated, events, nil
}

func (s *Service) broadcast(ctx context.Context, p *Payroll, ntype, title, body string) ([]notifications.Event, error) {
	operators, err := s.store.ActiveOperatorIDs(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]notifications.Event, 0, len(operators))
	for _, userID := range operators {
		events = append(events, notifications.Event{
			CompanyID: p.CompanyID,
			UserID:    userID,
			Type:      ntype,
			Title:     title,
			Body:      body,
		})
	}
	return events, nil
}
