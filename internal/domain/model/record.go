// Пакет model — доменные модели Strikeoff Dashboard.
package model

import (
	"encoding/json"
	"time"
)

// Действия оператора над заявкой.
const (
	// ActionProcessed — пометить заявку обработанной.
	ActionProcessed = "processed"
	// ActionUnprocessed — вернуть заявку в необработанные.
	ActionUnprocessed = "unprocessed"
	// ActionDelete — физически удалить заявку.
	ActionDelete = "delete"
)

// IsValidAction проверяет, является ли строка допустимым действием.
func IsValidAction(action string) bool {
	switch action {
	case ActionProcessed, ActionUnprocessed, ActionDelete:
		return true
	default:
		return false
	}
}

// StrikeOffRequest — заявка на вычеркивание компании из реестра.
// Хранится в таблице strike_off_requests.
type StrikeOffRequest struct {
	// ID — UUID записи, присваивается БД
	ID string
	// Processed — обработана ли заявка оператором
	Processed bool
	// CreatedAt — время создания записи, неизменяемое
	CreatedAt time.Time
	// Details — описательные поля заявки (компания, директора, адреса,
	// налоговый статус). Непрозрачный payload: сервер их не интерпретирует.
	Details map[string]any
}

// MarshalJSON сериализует заявку в плоский JSON: ключи details на верхнем
// уровне рядом с id, processed и createdAt — формат, ожидаемый дашбордом.
func (r *StrikeOffRequest) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Details)+3)
	for k, v := range r.Details {
		flat[k] = v
	}
	flat["id"] = r.ID
	flat["processed"] = r.Processed
	flat["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339)
	return json.Marshal(flat)
}
