package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/citylink/citylink-api/internal/core/domain"
	"github.com/citylink/citylink-api/internal/core/ports"
)

type stubAccountRepo struct {
	accounts []*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return domain.ErrEmailTaken
		}
	}
	r.accounts = append(r.accounts, cloneAccount(account))
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range r.accounts {
		if a.Role == role {
			out = append(out, cloneAccount(a))
		}
	}
	return out, nil
}

func (r *stubAccountRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, a := range r.accounts {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	kept := r.accounts[:0]
	for _, a := range r.accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.accounts = kept
	return nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Account
	themes   map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Account), themes: make(map[string]string)}
}

func (s *stubSessionStore) SaveSession(_ context.Context, account *domain.Account) error {
	s.sessions[account.ID] = cloneAccount(account)
	return nil
}

func (s *stubSessionStore) LoadSession(_ context.Context, accountID string) (*domain.Account, error) {
	a, ok := s.sessions[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (s *stubSessionStore) DeleteSession(_ context.Context, accountID string) error {
	delete(s.sessions, accountID)
	return nil
}

func (s *stubSessionStore) SaveTheme(_ context.Context, accountID, theme string) error {
	s.themes[accountID] = theme
	return nil
}

func (s *stubSessionStore) LoadTheme(_ context.Context, accountID string) (string, error) {
	if theme, ok := s.themes[accountID]; ok {
		return theme, nil
	}
	return "light", nil
}

var testBootstrap = BootstrapCredentials{
	ID:       "SA-998877",
	Email:    "admin@citylink.com",
	Password: "admin123",
}

func newTestAccountService(repo *stubAccountRepo, sessions *stubSessionStore) *AccountService {
	return NewAccountService(repo, sessions, testBootstrap, "secret", time.Hour, zerolog.Nop())
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())

	token, account, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "pass123",
		City:     "Chicago",
		State:    "IL",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account.Role != domain.RoleCitizen {
		t.Fatalf("unexpected role: %s", account.Role)
	}
	if account.ID == "" || account.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set: %+v", account)
	}
	if account.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "a", Email: "dup@example.com", Password: "p"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "b", Email: "dup@example.com", Password: "q"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("directory size changed on failed create: %d", len(repo.accounts))
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	svc := newTestAccountService(newStubAccountRepo(), newStubSessionStore())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@example.com", Password: "p"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing name, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "x", Email: "x@example.com"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := newStubSessionStore()
	svc := newTestAccountService(repo, sessions)

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret", City: "Dallas",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if account.ID != registered.ID {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleCitizen) || claims["city"] != "Dallas" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, ok := sessions.sessions[account.ID]; !ok {
		t.Fatalf("expected session to be cached on login")
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	svc := newTestAccountService(newStubAccountRepo(), newStubSessionStore())
	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "d", Email: "d@example.com", Password: "right"})

	if _, _, err := svc.Login(context.Background(), "d@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UnknownEmailCollapsesToInvalidCredentials(t *testing.T) {
	svc := newTestAccountService(newStubAccountRepo(), newStubSessionStore())
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_EmailIsCaseSensitive(t *testing.T) {
	svc := newTestAccountService(newStubAccountRepo(), newStubSessionStore())
	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "e", Email: "Exact@example.com", Password: "p"})

	if _, _, err := svc.Login(context.Background(), "exact@example.com", "p"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected case-sensitive lookup to miss, got %v", err)
	}
}

func TestAccountService_Bootstrap_Idempotent(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())

	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	n, _ := repo.CountByRole(context.Background(), domain.RoleSuperAdmin)
	if n != 1 {
		t.Fatalf("expected exactly one super admin, got %d", n)
	}

	admin, err := repo.FindByEmail(context.Background(), testBootstrap.Email)
	if err != nil {
		t.Fatalf("super admin not found: %v", err)
	}
	if admin.ID != testBootstrap.ID {
		t.Fatalf("expected bootstrap id %s, got %s", testBootstrap.ID, admin.ID)
	}
}

func TestAccountService_Login_SuperAdmin(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	_, admin, err := svc.Login(context.Background(), testBootstrap.Email, testBootstrap.Password)
	if err != nil {
		t.Fatalf("super admin login failed: %v", err)
	}
	if admin.Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected role: %s", admin.Role)
	}
}

func TestAccountService_Login_SuperAdminIDMismatchRejected(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	_ = repo.Create(context.Background(), &domain.Account{
		ID:           "rogue-id",
		Name:         "Impostor",
		Email:        "admin@citylink.com",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	})

	if _, _, err := svc.Login(context.Background(), "admin@citylink.com", "admin123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected mismatched super admin id to be rejected, got %v", err)
	}
}

func TestAccountService_ProvisionAndListCityAdmins(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())

	first, err := svc.ProvisionCityAdmin(context.Background(), ports.ProvisionCityAdminInput{
		Name: "Ada", Email: "ada@chicago.gov", Password: "p", City: "Chicago",
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if first.Role != domain.RoleCityAdmin || first.City != "Chicago" {
		t.Fatalf("unexpected account: %+v", first)
	}

	second, err := svc.ProvisionCityAdmin(context.Background(), ports.ProvisionCityAdminInput{
		Name: "Bo", Email: "bo@dallas.gov", Password: "p", City: "Dallas",
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	admins, err := svc.ListCityAdmins(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(admins) != 2 || admins[0].ID != first.ID || admins[1].ID != second.ID {
		t.Fatalf("expected both admins in persisted order, got %+v", admins)
	}
}

func TestAccountService_ProvisionCityAdmin_RequiresCity(t *testing.T) {
	svc := newTestAccountService(newStubAccountRepo(), newStubSessionStore())
	_, err := svc.ProvisionCityAdmin(context.Background(), ports.ProvisionCityAdminInput{
		Name: "Ada", Email: "ada@chicago.gov", Password: "p",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing city, got %v", err)
	}
}

func TestAccountService_DeleteCityAdmin(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := newStubSessionStore()
	svc := newTestAccountService(repo, sessions)

	admin, _ := svc.ProvisionCityAdmin(context.Background(), ports.ProvisionCityAdminInput{
		Name: "Ada", Email: "ada@chicago.gov", Password: "p", City: "Chicago",
	})
	sessions.sessions[admin.ID] = cloneAccount(admin)

	if err := svc.DeleteCityAdmin(context.Background(), admin.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), admin.ID); err != domain.ErrAccountNotFound {
		t.Fatalf("expected account gone, got %v", err)
	}
	if _, ok := sessions.sessions[admin.ID]; ok {
		t.Fatalf("expected session dropped with account")
	}

	// Deleting an unknown id is a benign no-op.
	if err := svc.DeleteCityAdmin(context.Background(), "missing"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}

func TestAccountService_DeleteCityAdmin_LeavesAuthoredIssues(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAccountService(repo, newStubSessionStore())

	admin, err := svc.ProvisionCityAdmin(context.Background(), ports.ProvisionCityAdminInput{
		Name: "Ada", Email: "ada@chicago.gov", Password: "p", City: "Chicago",
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	issueRepo := newStubIssueRepo()
	issueSvc := newTestIssueService(issueRepo, &stubSummarizer{})
	reported, err := issueSvc.Report(context.Background(), ports.ReportIssueInput{
		Title:       "Flooded underpass",
		Description: "Standing water after every storm",
		Category:    "Infrastructure (Potholes, Roads)",
		Address:     "Lower Wacker Dr",
		City:        admin.City,
		AuthorID:    admin.ID,
		AuthorName:  admin.Name,
	})
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if err := svc.DeleteCityAdmin(context.Background(), admin.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The account is gone but its reports stay, still keyed to the old id.
	orphaned, err := issueSvc.ListByAuthor(context.Background(), superActor, admin.ID)
	if err != nil {
		t.Fatalf("ListByAuthor failed: %v", err)
	}
	if len(orphaned) != 1 || orphaned[0].ID != reported.ID {
		t.Fatalf("expected the deleted author's issue to survive, got %+v", orphaned)
	}
	if orphaned[0].AuthorID != admin.ID {
		t.Fatalf("expected authorId %q preserved, got %q", admin.ID, orphaned[0].AuthorID)
	}
}

func TestAccountService_CurrentAccount_FallsBackToDirectory(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := newStubSessionStore()
	svc := newTestAccountService(repo, sessions)

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "p", City: "Chicago",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Simulate session expiry.
	delete(sessions.sessions, registered.ID)

	account, err := svc.CurrentAccount(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("CurrentAccount failed: %v", err)
	}
	if account.ID != registered.ID {
		t.Fatalf("unexpected account: %+v", account)
	}
	if _, ok := sessions.sessions[registered.ID]; !ok {
		t.Fatalf("expected session re-cached after fallback")
	}
}
