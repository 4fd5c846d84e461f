package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront-be/internal/entities"
	"storefront-be/internal/jwt"
	"storefront-be/internal/models"
	"storefront-be/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the user repository
type fakeUserRepo struct {
	users  map[string]*entities.User // keyed by email
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(email, passwordHash, role string) (*entities.User, error) {
	if _, exists := f.users[email]; exists {
		return nil, repository.ErrDuplicateEmail
	}
	f.nextID++
	user := &entities.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	user, exists := f.users[email]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(id int64) (*entities.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(id int64, email string, passwordHash *string) error {
	user, err := f.FindByID(id)
	if err != nil {
		return err
	}
	delete(f.users, user.Email)
	user.Email = email
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	f.users[email] = user
	return nil
}

func (f *fakeUserRepo) SetResetToken(email, token string, expiry int64) (bool, error) {
	user, exists := f.users[email]
	if !exists {
		return false, nil
	}
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	return true, nil
}

func (f *fakeUserRepo) ConsumeResetToken(token, passwordHash string, now int64) (bool, error) {
	for _, user := range f.users {
		if user.ResetToken != nil && *user.ResetToken == token &&
			user.ResetTokenExpiry != nil && *user.ResetTokenExpiry > now {
			user.PasswordHash = passwordHash
			user.ResetToken = nil
			user.ResetTokenExpiry = nil
			return true, nil
		}
	}
	return false, nil
}

// fakeMailer records outgoing mail and can be told to fail
type fakeMailer struct {
	sent []string // bodies
	fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, body)
	return nil
}

func newAuthService(repo repository.UserRepository, mail *fakeMailer) AuthService {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService, mail, "http://localhost:3000", "admin@shop.test")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeMailer{})

	req := &models.RegisterRequest{Email: "a@x.com", Password: "secret1"}
	if err := svc.Register(req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	err := svc.Register(req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken on second registration, got: %v", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("Expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestRegister_AdminEmailGetsAdminRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeMailer{})

	if err := svc.Register(&models.RegisterRequest{Email: "admin@shop.test", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if repo.users["admin@shop.test"].Role != entities.RoleAdmin {
		t.Errorf("Expected admin role, got '%s'", repo.users["admin@shop.test"].Role)
	}
	if repo.users["a@x.com"].Role != entities.RoleCustomer {
		t.Errorf("Expected customer role, got '%s'", repo.users["a@x.com"].Role)
	}
}

func TestLogin_TokenIdentityMatchesRegisteredUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeMailer{})

	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	resp, err := svc.Login(&models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	identity, err := jwt.NewJWTService("test-secret", time.Hour).VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("Expected token to verify, got: %v", err)
	}
	if identity.UserID != repo.users["a@x.com"].ID {
		t.Errorf("Expected token identity %d, got %d", repo.users["a@x.com"].ID, identity.UserID)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeMailer{})

	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	_, wrongPassword := svc.Login(&models.LoginRequest{Email: "a@x.com", Password: "wrong"})
	_, unknownEmail := svc.Login(&models.LoginRequest{Email: "nobody@x.com", Password: "secret1"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got: %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got: %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("Wrong-password and unknown-email failures must be identical")
	}
}

func TestRequestReset_SendsTokenLink(t *testing.T) {
	repo := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := newAuthService(repo, mail)

	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if err := svc.RequestReset("a@x.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	user := repo.users["a@x.com"]
	if user.ResetToken == nil || *user.ResetToken == "" {
		t.Fatal("Expected a stored reset token")
	}
	if len(*user.ResetToken) != 40 {
		t.Errorf("Expected 40 hex characters, got %d", len(*user.ResetToken))
	}
	if user.ResetTokenExpiry == nil || *user.ResetTokenExpiry <= time.Now().UnixMilli() {
		t.Error("Expected the token expiry to be in the future")
	}
	if len(mail.sent) != 1 || !strings.Contains(mail.sent[0], *user.ResetToken) {
		t.Error("Expected one mail containing the reset token")
	}
}

func TestRequestReset_UnknownEmailSendsNothing(t *testing.T) {
	mail := &fakeMailer{}
	svc := newAuthService(newFakeUserRepo(), mail)

	if err := svc.RequestReset("nobody@x.com"); err != nil {
		t.Fatalf("Expected no error for unknown email, got: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Error("Expected no mail for an unknown email")
	}
}

func TestRequestReset_DeliveryFailureSurfaces(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeMailer{fail: true})

	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	err := svc.RequestReset("a@x.com")
	if !errors.Is(err, ErrMailDelivery) {
		t.Errorf("Expected ErrMailDelivery, got: %v", err)
	}
}

func TestConsumeReset_SucceedsExactlyOnce(t *testing.T) {
	repo := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := newAuthService(repo, mail)

	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := svc.RequestReset("a@x.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	token := *repo.users["a@x.com"].ResetToken

	if err := svc.ConsumeReset(token, "newpassword"); err != nil {
		t.Fatalf("Expected first consumption to succeed, got: %v", err)
	}

	user := repo.users["a@x.com"]
	if user.ResetToken != nil || user.ResetTokenExpiry != nil {
		t.Error("Expected token fields to be cleared after consumption")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")) != nil {
		t.Error("Expected the new password to verify against the stored hash")
	}

	err := svc.ConsumeReset(token, "anotherpassword")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("Expected ErrInvalidResetToken on second consumption, got: %v", err)
	}
}

func TestConsumeReset_ExpiredTokenFails(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, &fakeMailer{})

	if err := svc.Register(&models.RegisterRequest{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expired := time.Now().Add(-time.Minute).UnixMilli()
	if _, err := repo.SetResetToken("a@x.com", "deadbeef", expired); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	err := svc.ConsumeReset("deadbeef", "newpassword")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("Expected ErrInvalidResetToken for expired token, got: %v", err)
	}
}
