package staff

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"autoshop/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
	ErrLastOwner    = errors.New("cannot demote or deactivate the last owner")
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type CreateStaffRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

type UpdateStaffRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
}

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func validRole(role string) bool {
	switch domain.UserRole(role) {
	case domain.RoleOwner, domain.RoleManager, domain.RoleMechanic:
		return true
	default:
		return false
	}
}

func (s *Service) List(ctx context.Context, tenantID int64) ([]domain.User, error) {
	return s.users.ListByTenant(ctx, tenantID)
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateStaffRequest) (*domain.User, error) {
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		TenantID:     tenantID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.UserRole(req.Role),
		Name:         req.Name,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update changes a staff member's role, active flag or contact
// details. The tenant must always keep at least one active owner.
func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateStaffRequest) (*domain.User, error) {
	u, err := s.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	demotes := req.Role != nil && *req.Role != string(domain.RoleOwner)
	deactivates := req.IsActive != nil && !*req.IsActive
	if u.Role == domain.RoleOwner && (demotes || deactivates) {
		others, err := s.activeOwnersExcept(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if others == 0 {
			return nil, ErrLastOwner
		}
	}

	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		u.Role = domain.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) get(ctx context.Context, tenantID, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.TenantID != tenantID {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) activeOwnersExcept(ctx context.Context, tenantID, exceptID int64) (int, error) {
	all, err := s.users.ListByTenant(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range all {
		if u.ID != exceptID && u.Role == domain.RoleOwner && u.IsActive {
			n++
		}
	}
	return n, nil
}
