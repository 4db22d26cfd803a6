// records.go — сервис работы с заявками strike-off.
// Список по статусу, действия оператора (processed/unprocessed/delete)
// и постановка webhook-уведомления в очередь после успешной мутации.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redboxrob/strikeoff-admin/internal/domain/model"
	"github.com/redboxrob/strikeoff-admin/internal/repository"
)

// Notifier — очередь исходящих webhook-уведомлений.
// Реализуется webhook.Notifier. Постановка неблокирующая:
// ответ оператору никогда не ждёт доставки.
type Notifier interface {
	// Enqueue ставит уведомление о действии над заявкой в очередь.
	Enqueue(action, recordID string)
}

// RecordService — бизнес-логика заявок strike-off.
type RecordService struct {
	records  repository.RecordRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewRecordService создаёт сервис заявок.
// notifier может быть nil — уведомления отключены.
func NewRecordService(
	records repository.RecordRepository,
	notifier Notifier,
	logger *slog.Logger,
) *RecordService {
	return &RecordService{
		records:  records,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "records")),
	}
}

// List возвращает все заявки с указанным статусом processed
// в порядке хранения (без сортировки и пагинации).
func (s *RecordService) List(ctx context.Context, processed bool) ([]*model.StrikeOffRequest, error) {
	records, err := s.records.ListByProcessed(ctx, processed)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	return records, nil
}

// Apply выполняет действие оператора над заявкой.
// processed/unprocessed устанавливают флаг, delete физически удаляет запись.
// Отсутствующая заявка — идемпотентный успех: повторное действие над уже
// удалённой записью отдаёт тот же результат, что и первое.
// После успеха уведомление ставится в очередь webhook.
func (s *RecordService) Apply(ctx context.Context, id, action string) error {
	if !model.IsValidAction(action) {
		return ErrInvalidAction
	}

	var err error
	switch action {
	case model.ActionDelete:
		err = s.records.Delete(ctx, id)
	case model.ActionProcessed:
		err = s.records.SetProcessed(ctx, id, true)
	case model.ActionUnprocessed:
		err = s.records.SetProcessed(ctx, id, false)
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Идемпотентность: заявка уже отсутствует
			s.logger.Debug("Действие над отсутствующей заявкой",
				slog.String("record_id", id),
				slog.String("action", action),
			)
		} else {
			return fmt.Errorf("ошибка выполнения действия %s: %w", action, err)
		}
	}

	if s.notifier != nil {
		s.notifier.Enqueue(action, id)
	}

	s.logger.Info("Действие выполнено",
		slog.String("record_id", id),
		slog.String("action", action),
	)
	return nil
}
