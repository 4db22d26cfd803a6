package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redboxrob/strikeoff-admin/internal/service"
)

// fakeVerifier — TokenVerifier с фиксированным ответом.
type fakeVerifier struct {
	claims *service.Claims
	err    error
}

func (f *fakeVerifier) Verify(_ string) (*service.Claims, error) {
	return f.claims, f.err
}

// протестированный handler: отдаёт имя пользователя из контекста
func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(UserFromContext(r.Context())))
	})
}

func doRequest(t *testing.T, verifier TokenVerifier, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewAuth(verifier).Middleware()(echoUserHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// errorCode извлекает код ошибки из envelope {"error":{"code":...}}.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Ошибка разбора тела ответа: %v", err)
	}
	return body.Error.Code
}

// TestMiddleware_MissingHeader — без Authorization запрос отклоняется 401.
func TestMiddleware_MissingHeader(t *testing.T) {
	rec := doRequest(t, &fakeVerifier{}, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, ожидался 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "UNAUTHORIZED" {
		t.Errorf("код ошибки = %q, ожидался UNAUTHORIZED", code)
	}
}

// TestMiddleware_MalformedHeader — заголовок не вида "Bearer <token>".
func TestMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		rec := doRequest(t, &fakeVerifier{}, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("заголовок %q: статус = %d, ожидался 401", header, rec.Code)
		}
	}
}

// TestMiddleware_InvalidToken — подпись не прошла проверку: 403.
func TestMiddleware_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("невалидный токен")}
	rec := doRequest(t, verifier, "Bearer bad-token")

	if rec.Code != http.StatusForbidden {
		t.Errorf("статус = %d, ожидался 403", rec.Code)
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Errorf("код ошибки = %q, ожидался FORBIDDEN", code)
	}
}

// TestMiddleware_ValidToken — claims попадают в контекст обработчика.
func TestMiddleware_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{claims: &service.Claims{Name: "admin"}}
	rec := doRequest(t, verifier, "Bearer good-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
	if got := rec.Body.String(); got != "admin" {
		t.Errorf("пользователь из контекста = %q, ожидался admin", got)
	}
}

// TestMiddleware_CaseInsensitiveBearer — схема "bearer" в любом регистре.
func TestMiddleware_CaseInsensitiveBearer(t *testing.T) {
	verifier := &fakeVerifier{claims: &service.Claims{Name: "admin"}}
	rec := doRequest(t, verifier, "bearer good-token")

	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d, ожидался 200 для схемы в нижнем регистре", rec.Code)
	}
}

// TestUserFromContext_Empty — без claims в контексте возвращается пустая строка.
func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := UserFromContext(req.Context()); got != "" {
		t.Errorf("UserFromContext = %q, ожидалась пустая строка", got)
	}
}
