// internal/loyalty/companies.go
package loyalty

import (
	"context"
	"net/url"
)

// CompaniesService maps to the backend /companies endpoints
type CompaniesService struct {
	client *Client
}

// List retrieves all companies
func (s *CompaniesService) List(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := s.client.get(ctx, "/companies", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Get retrieves a company by id
func (s *CompaniesService) Get(ctx context.Context, id string) (*Company, error) {
	if id == "" {
		return nil, NewValidationError("company id is required")
	}
	var company Company
	if err := s.client.get(ctx, "/companies/"+url.PathEscape(id), nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// ByLoyaltyAccount retrieves the company owning a loyalty account
func (s *CompaniesService) ByLoyaltyAccount(ctx context.Context, loyaltyAccountID string) (*Company, error) {
	if loyaltyAccountID == "" {
		return nil, NewValidationError("loyalty account id is required")
	}
	var company Company
	if err := s.client.get(ctx, "/companies/loyalty-account/"+url.PathEscape(loyaltyAccountID), nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}
