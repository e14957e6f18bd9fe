package service

import (
	"context"
	"fmt"

	"jobledger/internal/model"
	"jobledger/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type CustomerFilter struct {
	Search string // matched against name, email, phone
	Page   int
	Limit  int
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, userID string, req CustomerRequest) (*model.Customer, error)
	GetCustomer(ctx context.Context, userID, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, userID string, filter CustomerFilter) ([]model.Customer, int64, error)
	UpdateCustomer(ctx context.Context, userID, id string, req CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, userID, id string) error
}

type customerService struct {
	repo      repository.CustomerRepository
	txManager repository.TransactionManager
}

func NewCustomerService(repo repository.CustomerRepository, txManager repository.TransactionManager) CustomerService {
	return &customerService{repo: repo, txManager: txManager}
}

// --- Implementation ---

func (s *customerService) CreateCustomer(ctx context.Context, userID string, req CustomerRequest) (*model.Customer, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	customer := &model.Customer{
		UserID:  uid,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, userID, id string) (*model.Customer, error) {
	uid, cid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, uid, cid)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, userID string, filter CustomerFilter) ([]model.Customer, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	customers, total, err := s.repo.List(ctx, uid, filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return customers, total, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID, id string, req CustomerRequest) (*model.Customer, error) {
	uid, cid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, uid, cid)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.Notes = req.Notes

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes the customer and, with it, all of its jobs.
func (s *customerService) DeleteCustomer(ctx context.Context, userID, id string) error {
	uid, cid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindByID(ctx, uid, cid); err != nil {
		return fmt.Errorf("customer not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, uid, cid); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return nil
	})
}

// --- Helpers ---

func parseOwnerAndID(userID, id string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	rid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return uid, rid, nil
}
