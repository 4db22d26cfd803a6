// auth.go — обработчик POST /api/login.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/redboxrob/strikeoff-admin/internal/api/errors"
	"github.com/redboxrob/strikeoff-admin/internal/service"
)

// loginRequest — тело запроса логина.
type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// loginResponse — тело успешного ответа логина.
type loginResponse struct {
	Token string `json:"token"`
}

// Login — POST /api/login.
// Проверяет учётные данные и возвращает токен сессии.
// Публичный endpoint, без bearer-токена.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.Name == "" || req.Password == "" {
		apierrors.Unauthorized(w, "Неверное имя пользователя или пароль")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apierrors.Unauthorized(w, "Неверное имя пользователя или пароль")
			return
		}
		h.logger.Error("Ошибка логина", "user", req.Name, "error", err)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
