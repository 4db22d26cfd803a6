package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/redboxrob/strikeoff-admin/internal/domain/model"
	"github.com/redboxrob/strikeoff-admin/internal/repository"
)

// fakeUserRepo — in-memory реализация UserRepository для тестов.
type fakeUserRepo struct {
	users map[string]*model.User
}

func (f *fakeUserRepo) GetByName(_ context.Context, name string) (*model.User, error) {
	user, ok := f.users[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.users[user.Name] = user
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAuthService создаёт AuthService с одним пользователем admin/secret123.
func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("Ошибка хэширования пароля: %v", err)
	}

	repo := &fakeUserRepo{users: map[string]*model.User{
		"admin": {Name: "admin", PasswordHash: hash},
	}}
	return NewAuthService(repo, "test-secret-at-least-16-chars", ttl, 0, testLogger())
}

// TestLogin_Success проверяет выпуск токена и его содержимое:
// claims name, iat и exp с разницей ровно в TTL.
func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t, 8*time.Hour)
	issuedAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Login(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("Login вернул ошибку: %v", err)
	}
	if token == "" {
		t.Fatal("Login вернул пустой токен")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify вернул ошибку для только что выпущенного токена: %v", err)
	}
	if claims.Name != "admin" {
		t.Errorf("claims.Name = %q, ожидалось %q", claims.Name, "admin")
	}

	iat := claims.IssuedAt.Time
	exp := claims.ExpiresAt.Time
	if !iat.Equal(issuedAt) {
		t.Errorf("iat = %v, ожидалось %v", iat, issuedAt)
	}
	if got := exp.Sub(iat); got != 8*time.Hour {
		t.Errorf("exp - iat = %v, ожидалось %v", got, 8*time.Hour)
	}
}

// TestLogin_WrongPassword — неверный пароль даёт ErrInvalidCredentials.
func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	_, err := svc.Login(context.Background(), "admin", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ожидалась ErrInvalidCredentials, получено: %v", err)
	}
}

// TestLogin_UnknownUser — неизвестный пользователь неотличим от неверного пароля.
func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	_, err := svc.Login(context.Background(), "nobody", "secret123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ожидалась ErrInvalidCredentials, получено: %v", err)
	}
}

// TestVerify_Expired — токен отклоняется после истечения срока действия.
// Часы сдвигаются за exp между выпуском и проверкой.
func TestVerify_Expired(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	issuedAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Login(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("Login вернул ошибку: %v", err)
	}

	// В пределах срока действия токен принимается
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("Verify вернул ошибку до истечения срока: %v", err)
	}

	// Через 2 часа (TTL 1 час) — отклоняется
	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken для просроченного токена, получено: %v", err)
	}
}

// TestVerify_WrongSecret — токен с другой подписью отклоняется.
func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name: "admin",
	})
	signed, err := other.SignedString([]byte("another-secret-entirely-here"))
	if err != nil {
		t.Fatalf("Ошибка подписи токена: %v", err)
	}

	_, err = svc.Verify(signed)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken для чужой подписи, получено: %v", err)
	}
}

// TestVerify_Garbage — мусорная строка вместо токена.
func TestVerify_Garbage(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	_, err := svc.Verify("not-a-jwt-at-all")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken, получено: %v", err)
	}
}

// TestVerify_NoExpiration — токен без exp отклоняется.
func TestVerify_NoExpiration(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Name: "admin"})
	signed, err := token.SignedString([]byte("test-secret-at-least-16-chars"))
	if err != nil {
		t.Fatalf("Ошибка подписи токена: %v", err)
	}

	_, err = svc.Verify(signed)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken для токена без exp, получено: %v", err)
	}
}
