package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/autoads-api/infrastructure/database/postgres"
	"github.com/vfg2006/autoads-api/internal/domain"
)

const (
	performanceTable = "creative_performance cp"
)

type PerformanceRepository interface {
	SaveOrUpdate(entry *domain.PerformanceEntry) error
	GetByCreativeIDAndDate(creativeID int64, date time.Time) (*domain.PerformanceEntry, error)
	ListByCreativeID(creativeID int64) ([]*domain.PerformanceEntry, error)
	AggregateByCreativeID(creativeID int64) (*domain.PerformanceAggregate, error)
	DeleteOlderThan(days int) (int64, error)
}

type performanceRepository struct {
	conn *postgres.Connection
}

func NewPerformanceRepository(conn *postgres.Connection) PerformanceRepository {
	return &performanceRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou substitui a linha de métricas de (criativo, data).
// Execuções posteriores do sync para a mesma data substituem a linha inteira.
func (r *performanceRepository) SaveOrUpdate(entry *domain.PerformanceEntry) error {
	query := squirrel.StatementBuilder.
		Insert("creative_performance").
		Columns("creative_id", "offer_id", "user_id", "date", "impressions", "clicks", "conversions", "cost_micros", "sync_date").
		Values(
			entry.CreativeID,
			entry.OfferID,
			entry.UserID,
			entry.Date.Format("2006-01-02"),
			entry.Impressions,
			entry.Clicks,
			entry.Conversions,
			entry.CostMicros,
			entry.SyncDate.Format("2006-01-02"),
		).
		Suffix(`
			ON CONFLICT (creative_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				conversions = EXCLUDED.conversions,
				cost_micros = EXCLUDED.cost_micros,
				sync_date = EXCLUDED.sync_date,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao salvar performance: %w", err)
	}

	return nil
}

func (r *performanceRepository) GetByCreativeIDAndDate(creativeID int64, date time.Time) (*domain.PerformanceEntry, error) {
	query, args, err := squirrel.
		Select("cp.id, cp.creative_id, cp.offer_id, cp.user_id, cp.date, cp.impressions, cp.clicks, cp.conversions, cp.cost_micros, cp.sync_date, cp.created_at, cp.updated_at").
		From(performanceTable).
		Where(squirrel.Eq{"cp.creative_id": creativeID, "cp.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry, err := scanPerformanceRow(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear performance: %w", err)
	}

	return entry, nil
}

func (r *performanceRepository) ListByCreativeID(creativeID int64) ([]*domain.PerformanceEntry, error) {
	query, args, err := squirrel.
		Select("cp.id, cp.creative_id, cp.offer_id, cp.user_id, cp.date, cp.impressions, cp.clicks, cp.conversions, cp.cost_micros, cp.sync_date, cp.created_at, cp.updated_at").
		From(performanceTable).
		Where(squirrel.Eq{"cp.creative_id": creativeID}).
		OrderBy("cp.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.PerformanceEntry, 0)
	for rows.Next() {
		var entry domain.PerformanceEntry
		err := rows.Scan(
			&entry.ID,
			&entry.CreativeID,
			&entry.OfferID,
			&entry.UserID,
			&entry.Date,
			&entry.Impressions,
			&entry.Clicks,
			&entry.Conversions,
			&entry.CostMicros,
			&entry.SyncDate,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear performance: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// AggregateByCreativeID acumula as métricas de todas as datas sincronizadas.
// Retorna nil quando o criativo não possui nenhuma linha de performance.
func (r *performanceRepository) AggregateByCreativeID(creativeID int64) (*domain.PerformanceAggregate, error) {
	query, args, err := squirrel.
		Select(
			"cp.creative_id",
			"COALESCE(SUM(cp.impressions), 0) AS impressions",
			"COALESCE(SUM(cp.clicks), 0) AS clicks",
			"COALESCE(SUM(cp.conversions), 0) AS conversions",
			"COALESCE(SUM(cp.cost_micros), 0) AS cost_micros",
		).
		From(performanceTable).
		Where(squirrel.Eq{"cp.creative_id": creativeID}).
		GroupBy("cp.creative_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var agg domain.PerformanceAggregate
	err = r.conn.QueryRow(query, args...).Scan(
		&agg.CreativeID,
		&agg.Impressions,
		&agg.Clicks,
		&agg.Conversions,
		&agg.CostMicros,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar performance: %w", err)
	}

	return &agg, nil
}

func (r *performanceRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("creative_performance").
		Where(squirrel.Lt{"date": cutoff.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func scanPerformanceRow(row *sql.Row) (*domain.PerformanceEntry, error) {
	var entry domain.PerformanceEntry
	err := row.Scan(
		&entry.ID,
		&entry.CreativeID,
		&entry.OfferID,
		&entry.UserID,
		&entry.Date,
		&entry.Impressions,
		&entry.Clicks,
		&entry.Conversions,
		&entry.CostMicros,
		&entry.SyncDate,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
