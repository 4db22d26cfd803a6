package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/redboxrob/strikeoff-admin/internal/domain/model"
)

// RecordRepository — доступ к таблице strike_off_requests.
type RecordRepository interface {
	// Create создаёт заявку. ID и CreatedAt присваиваются БД.
	Create(ctx context.Context, rec *model.StrikeOffRequest) error
	// GetByID возвращает заявку по UUID.
	GetByID(ctx context.Context, id string) (*model.StrikeOffRequest, error)
	// ListByProcessed возвращает все заявки с указанным статусом
	// в порядке хранения (полный скан по флагу, без пагинации).
	ListByProcessed(ctx context.Context, processed bool) ([]*model.StrikeOffRequest, error)
	// SetProcessed устанавливает флаг processed заявки.
	SetProcessed(ctx context.Context, id string, processed bool) error
	// Delete физически удаляет заявку.
	Delete(ctx context.Context, id string) error
}

// recordRepo — реализация RecordRepository.
type recordRepo struct {
	db DBTX
}

// NewRecordRepository создаёт репозиторий заявок.
func NewRecordRepository(db DBTX) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) Create(ctx context.Context, rec *model.StrikeOffRequest) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("ошибка сериализации details: %w", err)
	}

	query := `
		INSERT INTO strike_off_requests (processed, details)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err = r.db.QueryRow(ctx, query, rec.Processed, details).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (*model.StrikeOffRequest, error) {
	query := `
		SELECT id, processed, created_at, details
		FROM strike_off_requests
		WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}
	return rec, nil
}

func (r *recordRepo) ListByProcessed(ctx context.Context, processed bool) ([]*model.StrikeOffRequest, error) {
	query := `
		SELECT id, processed, created_at, details
		FROM strike_off_requests
		WHERE processed = $1`

	rows, err := r.db.Query(ctx, query, processed)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	var result []*model.StrikeOffRequest
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *recordRepo) SetProcessed(ctx context.Context, id string, processed bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE strike_off_requests SET processed = $2 WHERE id = $1`,
		id, processed,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM strike_off_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanRecord читает одну строку strike_off_requests.
// details приходит как jsonb и десериализуется в map.
func scanRecord(row pgx.Row) (*model.StrikeOffRequest, error) {
	rec := &model.StrikeOffRequest{}
	var details []byte

	if err := row.Scan(&rec.ID, &rec.Processed, &rec.CreatedAt, &details); err != nil {
		return nil, err
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.Details); err != nil {
			return nil, fmt.Errorf("ошибка десериализации details: %w", err)
		}
	}
	if rec.Details == nil {
		rec.Details = map[string]any{}
	}
	return rec, nil
}
