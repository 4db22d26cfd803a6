// records.go — обработчики /api/records endpoints.
// Список заявок по статусу и действия оператора над одной заявкой.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/redboxrob/strikeoff-admin/internal/api/errors"
	"github.com/redboxrob/strikeoff-admin/internal/domain/model"
	"github.com/redboxrob/strikeoff-admin/internal/service"
)

// actionRequest — тело запроса действия над заявкой.
type actionRequest struct {
	Action string `json:"action"`
}

// actionResponse — тело успешного ответа действия.
type actionResponse struct {
	Success bool `json:"success"`
}

// ListRecords — GET /api/records?processed=true|false.
// Возвращает все заявки с указанным статусом в порядке хранения.
// Любое значение параметра, кроме "true", трактуется как false.
// Доступ: аутентифицированный оператор.
func (h *APIHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	processed := r.URL.Query().Get("processed") == "true"

	records, err := h.records.List(r.Context(), processed)
	if err != nil {
		h.logger.Error("Ошибка получения списка заявок", "error", err)
		apierrors.InternalError(w, "Ошибка получения списка заявок")
		return
	}

	// Пустой список сериализуем как [], не null
	if records == nil {
		records = []*model.StrikeOffRequest{}
	}

	writeJSON(w, http.StatusOK, records)
}

// ApplyAction — POST /api/records/{id}/action.
// Выполняет действие processed/unprocessed/delete над заявкой.
// Действие над отсутствующей заявкой — идемпотентный успех.
// Доступ: аутентифицированный оператор.
func (h *APIHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		apierrors.ValidationError(w, "Некорректный идентификатор заявки")
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.records.Apply(r.Context(), id, req.Action); err != nil {
		if errors.Is(err, service.ErrInvalidAction) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка выполнения действия",
			"record_id", id, "action", req.Action, "error", err)
		apierrors.InternalError(w, "Ошибка выполнения действия")
		return
	}

	writeJSON(w, http.StatusOK, actionResponse{Success: true})
}
