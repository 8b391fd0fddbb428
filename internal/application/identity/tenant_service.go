package identity

import (
	"context"

	"github.com/craftbase/backend/internal/domain/identity"
	"github.com/craftbase/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService handles tenant account operations. It is the only service
// that works outside a tenant binding.
type TenantService struct {
	tenantRepo identity.TenantRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo identity.TenantRepository, jwtService *auth.JWTService, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Signup creates a tenant account and issues an access token bound to it
func (s *TenantService) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	tenant, err := identity.NewTenant(req.Name, req.Plan)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateToken(tenant.ID, req.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tenant signed up",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("plan", tenant.Plan),
	)

	return &SignupResponse{
		Tenant:    ToTenantResponse(tenant),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetByID retrieves a tenant account
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTenantResponse(tenant)
	return &response, nil
}

// Update applies a partial update to a tenant account
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Plan != nil {
		if err := tenant.ChangePlan(*req.Plan); err != nil {
			return nil, err
		}
	}
	tenant.Touch()

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Suspend suspends a tenant account; bound requests for it keep working at
// the data layer, the HTTP boundary rejects them.
func (s *TenantService) Suspend(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tenant.Suspend()
	return s.tenantRepo.Save(ctx, tenant)
}

// Activate re-activates a suspended tenant account
func (s *TenantService) Activate(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tenant.Activate()
	return s.tenantRepo.Save(ctx, tenant)
}
