package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"autoshop/internal/availability"
	"autoshop/internal/domain"
	jwtsvc "autoshop/internal/pkg/jwt"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Service struct {
	tenants TenantRepository
	users   UserRepository
	jwt     *jwtsvc.Service
}

func NewService(tenants TenantRepository, users UserRepository, jwt *jwtsvc.Service) *Service {
	return &Service{
		tenants: tenants,
		users:   users,
		jwt:     jwt,
	}
}

// Register creates a tenant with default availability rules and its
// owner account, and signs the owner in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, ErrInvalidSlug
	}

	taken, err := s.tenants.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rulesJSON, err := availability.DefaultRules().Marshal()
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		Name:                  req.ShopName,
		Slug:                  slug,
		Phone:                 req.Phone,
		Email:                 req.Email,
		Status:                domain.OnboardingPending,
		AvailabilityRulesJSON: rulesJSON,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}

	owner := &domain.User{
		TenantID:     tenant.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
		Name:         req.Name,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, owner); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(owner.ID, tenant.ID, string(owner.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken: token,
		UserID:      owner.ID,
		TenantID:    tenant.ID,
		Role:        string(owner.Role),
	}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := s.jwt.GenerateToken(user.ID, user.TenantID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken: token,
		UserID:      user.ID,
		TenantID:    user.TenantID,
		Role:        string(user.Role),
	}, nil
}
