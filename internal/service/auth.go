// auth.go — сервис аутентификации операторов.
// Проверяет имя/пароль по таблице users (bcrypt) и выпускает
// подписанные HS256 токены сессии с фиксированным сроком действия.
// Токены stateless: отзыв до истечения срока невозможен.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/redboxrob/strikeoff-admin/internal/repository"
)

// Claims — claims токена сессии.
type Claims struct {
	jwt.RegisteredClaims
	// Name — имя пользователя.
	Name string `json:"name"`
}

// AuthService — выпуск и проверка токенов сессии.
type AuthService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	logger *slog.Logger

	// now подменяется в тестах.
	now func() time.Time
}

// NewAuthService создаёт сервис аутентификации.
// secret — секрет подписи HS256, ttl — срок действия токена,
// leeway — допустимое отклонение времени при проверке.
func NewAuthService(
	users repository.UserRepository,
	secret string,
	ttl time.Duration,
	leeway time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		leeway: leeway,
		logger: logger.With(slog.String("component", "auth")),
		now:    time.Now,
	}
}

// Login проверяет учётные данные и возвращает подписанный токен сессии.
// Неизвестное имя и неверный пароль неразличимы для вызывающего —
// оба дают ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Неверный пароль", slog.String("user", name))
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name: user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	s.logger.Info("Пользователь аутентифицирован", slog.String("user", user.Name))
	return signed, nil
}

// Verify проверяет подпись и срок действия токена.
// Возвращает claims или ErrInvalidToken.
func (s *AuthService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if !token.Valid || claims.Name == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword возвращает bcrypt-хэш пароля.
// Используется при провижене учётных записей и в тестах.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}
