package service

import (
	"log/slog"
	"strings"

	"github.com/yourorg/garagetrack/internal/auth"
	"github.com/yourorg/garagetrack/internal/domain"
	"github.com/yourorg/garagetrack/internal/observability/metrics"
	"github.com/yourorg/garagetrack/internal/passhash"
)

// AuthService handles login and tenant registration.
type AuthService struct {
	users  domain.UserRepository
	reg    domain.RegistrationRepository
	hasher passhash.Hasher
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users domain.UserRepository,
	reg domain.RegistrationRepository,
	hasher passhash.Hasher,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{users: users, reg: reg, hasher: hasher, logger: logger}
}

// Login authenticates a user within a tenant and returns the identity the
// caller populates its session with. Check ordering is fixed: blank-input
// validation precedes any store access, and the disabled-status check
// precedes password verification.
func (s *AuthService) Login(tenantID int64, email, password string) (auth.Identity, error) {
	if strings.TrimSpace(email) == "" {
		return auth.Identity{}, domain.E(domain.ErrValidation, "E-posta boş olamaz.")
	}
	if strings.TrimSpace(password) == "" {
		return auth.Identity{}, domain.E(domain.ErrValidation, "Şifre boş olamaz.")
	}

	user, err := s.users.FindByTenantAndEmail(tenantID, strings.TrimSpace(email))
	if err != nil {
		metrics.ObserveAuth("login", "store_error")
		return auth.Identity{}, err
	}
	if user == nil {
		metrics.ObserveAuth("login", "user_not_found")
		return auth.Identity{}, domain.E(domain.ErrAuth, "Kullanıcı bulunamadı.")
	}

	if user.Status != domain.UserActive {
		metrics.ObserveAuth("login", "user_disabled")
		s.logger.Info("login attempt for disabled user",
			slog.Int64("tenant_id", tenantID),
			slog.Int64("user_id", user.ID),
		)
		return auth.Identity{}, domain.E(domain.ErrAuth, "Kullanıcı devre dışı.")
	}

	if user.PasswordHash == nil || strings.TrimSpace(*user.PasswordHash) == "" {
		metrics.ObserveAuth("login", "no_password")
		return auth.Identity{}, domain.E(domain.ErrAuth, "Bu kullanıcı için şifre tanımlı değil.")
	}

	if !s.hasher.Verify(password, *user.PasswordHash) {
		metrics.ObserveAuth("login", "wrong_password")
		s.logger.Info("login failed with wrong password",
			slog.Int64("tenant_id", tenantID),
			slog.String("email", user.Email),
		)
		return auth.Identity{}, domain.E(domain.ErrAuth, "Şifre hatalı.")
	}

	// The stamp does not gate authentication; a failed write is logged and
	// the login still succeeds.
	if err := s.users.RecordLogin(user.ID); err != nil {
		s.logger.Warn("failed to stamp last login",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	metrics.ObserveAuth("login", "success")
	s.logger.Info("user logged in",
		slog.Int64("tenant_id", user.TenantID),
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return auth.Identity{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Role:     user.Role,
		Email:    user.Email,
	}, nil
}

// RegisterTenantAndAdmin creates a tenant and its first administrator in
// one transaction and returns the new tenant id.
//
// fullName is accepted but not persisted; the users table has no column for
// it in this schema version.
func (s *AuthService) RegisterTenantAndAdmin(companyName, fullName, email, rawPassword string) (int64, error) {
	if strings.TrimSpace(companyName) == "" {
		return 0, domain.E(domain.ErrValidation, "Firma adı boş olamaz.")
	}
	if strings.TrimSpace(fullName) == "" {
		return 0, domain.E(domain.ErrValidation, "Ad soyad boş olamaz.")
	}
	if strings.TrimSpace(email) == "" {
		return 0, domain.E(domain.ErrValidation, "E-posta boş olamaz.")
	}
	if strings.TrimSpace(rawPassword) == "" {
		return 0, domain.E(domain.ErrValidation, "Şifre boş olamaz.")
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(email))

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		metrics.ObserveAuth("register", "hash_error")
		return 0, domain.Wrap(domain.ErrStore, "failed to hash password", err)
	}

	tenantID, err := s.reg.CreateTenantWithAdmin(strings.TrimSpace(companyName), normalizedEmail, hash)
	if err != nil {
		metrics.ObserveAuth("register", "error")
		return 0, err
	}

	metrics.ObserveAuth("register", "success")
	s.logger.Info("tenant and admin registered",
		slog.Int64("tenant_id", tenantID),
		slog.String("email", normalizedEmail),
	)
	return tenantID, nil
}
