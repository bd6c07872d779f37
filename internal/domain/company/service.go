package company

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, name, rfc string) (*Company, error) {
	return s.store.CreateCompany(ctx, name, rfc)
}

func (s *Service) Get(ctx context.Context, companyID string) (*Company, error) {
	return s.store.GetCompany(ctx, companyID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Company, error) {
	return s.store.ListCompanies(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, companyID, name string) (*Company, error) {
	return s.store.UpdateCompany(ctx, companyID, name)
}

// AdvanceStatus moves the onboarding wizard one step forward. A company
// already ACTIVE stays ACTIVE; the status never regresses.
func (s *Service) AdvanceStatus(ctx context.Context, companyID string) (*Company, error) {
	current, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	next, ok := NextStatus(current.Status)
	if !ok {
		return current, nil
	}
	return s.store.SetStatus(ctx, companyID, next)
}
