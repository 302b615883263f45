package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

// BootstrapCredentials identify the singleton super admin. The ID doubles as a
// login guard: a stored super admin whose ID differs from this one cannot
// authenticate.
type BootstrapCredentials struct {
	ID       string
	Email    string
	Password string
}

// AccountService implements registration, provisioning, login, and the
// super-admin bootstrap.
type AccountService struct {
	repo      ports.AccountRepository
	sessions  ports.SessionStore
	bootstrap BootstrapCredentials
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	sessions ports.SessionStore,
	bootstrap BootstrapCredentials,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		repo:      repo,
		sessions:  sessions,
		bootstrap: bootstrap,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a citizen account and logs it in.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.create(ctx, domain.RoleCitizen, input.Name, input.Email, input.Password, accountDetails{
		City:    input.City,
		State:   input.State,
		Address: input.Address,
		Phone:   input.Phone,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(account)
	if err != nil {
		return "", nil, err
	}
	s.cacheSession(ctx, account)

	s.logger.Info().Str("account_id", account.ID).Str("city", account.City).Msg("citizen registered")
	return token, account, nil
}

// ProvisionCityAdmin creates a city-admin account. Authorization is enforced
// at the transport layer; the service only validates the data.
func (s *AccountService) ProvisionCityAdmin(ctx context.Context, input ports.ProvisionCityAdminInput) (*domain.Account, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.City == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.create(ctx, domain.RoleCityAdmin, input.Name, input.Email, input.Password, accountDetails{
		City:  input.City,
		Phone: input.Phone,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("city", account.City).Msg("city admin provisioned")
	return account, nil
}

// Login authenticates by email and password. Super-admin accounts must also
// carry the configured bootstrap ID; a mismatch is rejected exactly like a
// wrong password so the guard leaks nothing.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if account.Role == domain.RoleSuperAdmin && account.ID != s.bootstrap.ID {
		s.logger.Warn().Str("account_id", account.ID).Msg("super admin id mismatch, login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return "", nil, err
	}
	s.cacheSession(ctx, account)

	s.logger.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login")
	return token, account, nil
}

// Logout discards the cached session. The token itself expires on its own.
func (s *AccountService) Logout(ctx context.Context, accountID string) error {
	return s.sessions.DeleteSession(ctx, accountID)
}

// CurrentAccount restores the session-cached account, falling back to the
// directory when the cache entry has expired.
func (s *AccountService) CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.sessions.LoadSession(ctx, accountID)
	if err == nil {
		return account, nil
	}

	account, err = s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.cacheSession(ctx, account)
	return account, nil
}

// Bootstrap creates the singleton super admin with the configured credentials
// when no account holds the role yet. Calling it again does nothing.
func (s *AccountService) Bootstrap(ctx context.Context) error {
	count, err := s.repo.CountByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.bootstrap.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.Account{
		ID:           s.bootstrap.ID,
		Name:         "System Super Admin",
		Email:        s.bootstrap.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		// Another instance may have won the race; that is still a bootstrap.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return err
	}

	s.logger.Info().Str("email", admin.Email).Msg("super admin bootstrapped")
	return nil
}

func (s *AccountService) ListCityAdmins(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.ListByRole(ctx, domain.RoleCityAdmin)
}

// DeleteCityAdmin removes the account. Issues authored by it keep their
// author_id; there is no cascade.
func (s *AccountService) DeleteCityAdmin(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("account_id", id).Msg("failed to drop session for deleted account")
	}
	s.logger.Info().Str("account_id", id).Msg("city admin deleted")
	return nil
}

type accountDetails struct {
	City    string
	State   string
	Address string
	Phone   string
}

func (s *AccountService) create(ctx context.Context, role domain.Role, name, email, password string, details accountDetails) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		City:         details.City,
		State:        details.State,
		Address:      details.Address,
		Phone:        details.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) issueToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"name": account.Name,
		"role": string(account.Role),
		"city": account.City,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// cacheSession stores the logged-in account for session restoration. A cache
// failure never fails the login.
func (s *AccountService) cacheSession(ctx context.Context, account *domain.Account) {
	if err := s.sessions.SaveSession(ctx, account); err != nil {
		s.logger.Warn().Err(err).Str("account_id", account.ID).Msg("failed to cache session")
	}
}
