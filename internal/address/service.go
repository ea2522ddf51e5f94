// Package address manages the delivery addresses embedded in the retailer
// profile. The profile is the aggregate root: the list is mutated only
// through these operations and rewritten as one unit per mutation, which is
// what keeps the single-principal invariant intact.
package address

import (
	"context"
	"errors"

	"github.com/giovanniklein/inn-b2b-varejista/internal/domain"
	"github.com/giovanniklein/inn-b2b-varejista/internal/repository"
	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("address not found")

// CreateRequest carries the structural fields of a new address.
type CreateRequest struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Complement string `json:"complement,omitempty"`
	Principal  bool   `json:"principal"`
}

// UpdateRequest updates structural fields only; the principal flag moves
// exclusively through SetPrincipal. Nil fields keep their current value.
type UpdateRequest struct {
	Label      *string `json:"label,omitempty"`
	Street     *string `json:"street,omitempty"`
	Number     *string `json:"number,omitempty"`
	District   *string `json:"district,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Complement *string `json:"complement,omitempty"`
}

type Service struct {
	retailers repository.RetailerRepository
}

func NewService(retailers repository.RetailerRepository) *Service {
	return &Service{retailers: retailers}
}

func (s *Service) List(ctx context.Context, retailerID string) ([]domain.Address, error) {
	retailer, err := s.retailers.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if retailer.Addresses == nil {
		return []domain.Address{}, nil
	}
	return retailer.Addresses, nil
}

func (s *Service) Create(ctx context.Context, retailerID string, req CreateRequest) (*domain.Address, error) {
	retailer, err := s.retailers.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	addresses := retailer.Addresses

	next := domain.Address{
		ID:         uuid.NewString(),
		Label:      req.Label,
		Street:     req.Street,
		Number:     req.Number,
		District:   req.District,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Complement: req.Complement,
		Principal:  req.Principal,
	}

	if next.Principal {
		for i := range addresses {
			addresses[i].Principal = false
		}
	} else if len(addresses) == 0 {
		// The first address is always the principal one.
		next.Principal = true
	}

	addresses = append(addresses, next)
	if err := s.retailers.UpdateAddresses(ctx, retailerID, addresses); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *Service) Update(ctx context.Context, retailerID, addressID string, req UpdateRequest) (*domain.Address, error) {
	retailer, err := s.retailers.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	for i := range retailer.Addresses {
		addr := &retailer.Addresses[i]
		if addr.ID != addressID {
			continue
		}
		applyUpdate(addr, req)
		if err := s.retailers.UpdateAddresses(ctx, retailerID, retailer.Addresses); err != nil {
			return nil, err
		}
		return addr, nil
	}
	return nil, ErrAddressNotFound
}

// Delete removes an address. Deleting the principal one promotes the first
// remaining address; deleting the last one leaves the list empty with no
// principal.
func (s *Service) Delete(ctx context.Context, retailerID, addressID string) error {
	retailer, err := s.retailers.FindByID(ctx, retailerID)
	if err != nil {
		return err
	}

	kept := make([]domain.Address, 0, len(retailer.Addresses))
	for _, addr := range retailer.Addresses {
		if addr.ID != addressID {
			kept = append(kept, addr)
		}
	}
	if len(kept) == len(retailer.Addresses) {
		return ErrAddressNotFound
	}

	if len(kept) > 0 && !hasPrincipal(kept) {
		kept[0].Principal = true
	}

	return s.retailers.UpdateAddresses(ctx, retailerID, kept)
}

// SetPrincipal flags one address as principal and clears every other.
func (s *Service) SetPrincipal(ctx context.Context, retailerID, addressID string) (*domain.Address, error) {
	retailer, err := s.retailers.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	var found *domain.Address
	for i := range retailer.Addresses {
		addr := &retailer.Addresses[i]
		if addr.ID == addressID {
			addr.Principal = true
			found = addr
		} else {
			addr.Principal = false
		}
	}
	if found == nil {
		return nil, ErrAddressNotFound
	}

	if err := s.retailers.UpdateAddresses(ctx, retailerID, retailer.Addresses); err != nil {
		return nil, err
	}
	return found, nil
}

func applyUpdate(addr *domain.Address, req UpdateRequest) {
	if req.Label != nil {
		addr.Label = *req.Label
	}
	if req.Street != nil {
		addr.Street = *req.Street
	}
	if req.Number != nil {
		addr.Number = *req.Number
	}
	if req.District != nil {
		addr.District = *req.District
	}
	if req.City != nil {
		addr.City = *req.City
	}
	if req.State != nil {
		addr.State = *req.State
	}
	if req.PostalCode != nil {
		addr.PostalCode = *req.PostalCode
	}
	if req.Complement != nil {
		addr.Complement = *req.Complement
	}
}

func hasPrincipal(addresses []domain.Address) bool {
	for _, addr := range addresses {
		if addr.Principal {
			return true
		}
	}
	return false
}
