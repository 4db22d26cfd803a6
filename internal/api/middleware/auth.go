// auth.go — middleware аутентификации по bearer-токену.
// Извлекает токен из заголовка Authorization, проверяет подпись и срок
// действия через сервис аутентификации и помещает claims в контекст запроса.
// Отсутствующий токен — 401, невалидный или просроченный — 403;
// до обработчиков (и до БД) такие запросы не доходят.
package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/redboxrob/strikeoff-admin/internal/api/errors"
	"github.com/redboxrob/strikeoff-admin/internal/service"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeyClaims — claims токена сессии в контексте запроса.
	ContextKeyClaims contextKey = "session_claims"
)

// TokenVerifier — проверка токена сессии.
// Реализуется service.AuthService.
type TokenVerifier interface {
	// Verify проверяет подпись и срок действия токена, возвращает claims.
	Verify(tokenString string) (*service.Claims, error)
}

// Auth — middleware аутентификации защищённых endpoints.
type Auth struct {
	verifier TokenVerifier
}

// NewAuth создаёт middleware аутентификации.
func NewAuth(verifier TokenVerifier) *Auth {
	return &Auth{verifier: verifier}
}

// Middleware возвращает HTTP middleware для проверки bearer-токена.
func (a *Auth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем Bearer token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierrors.Unauthorized(w, "Отсутствует заголовок Authorization")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				apierrors.Unauthorized(w, "Неверный формат Authorization: ожидается Bearer <token>")
				return
			}

			tokenString := parts[1]
			if tokenString == "" {
				apierrors.Unauthorized(w, "Пустой Bearer token")
				return
			}

			claims, err := a.verifier.Verify(tokenString)
			if err != nil {
				apierrors.Forbidden(w, "Невалидный или просроченный токен")
				return
			}

			// Помещаем claims в контекст
			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// --- Context helpers ---

// ClaimsFromContext извлекает claims из контекста запроса.
// Возвращает nil, если claims не найдены.
func ClaimsFromContext(ctx context.Context) *service.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*service.Claims)
	return claims
}

// UserFromContext извлекает имя пользователя из контекста запроса.
// Возвращает пустую строку, если claims не найдены.
func UserFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.Name
}
