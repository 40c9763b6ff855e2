package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/autoads-api/infrastructure/database/postgres"
	"github.com/vfg2006/autoads-api/internal/domain"
)

const (
	benchmarksTable = "industry_benchmarks"
)

type BenchmarkRepository interface {
	GetByCode(industryCode string) (*domain.IndustryBenchmark, error)
	ListAll() ([]*domain.IndustryBenchmark, error)
}

type benchmarkRepository struct {
	conn *postgres.Connection
}

func NewBenchmarkRepository(conn *postgres.Connection) BenchmarkRepository {
	return &benchmarkRepository{
		conn: conn,
	}
}

func (r *benchmarkRepository) GetByCode(industryCode string) (*domain.IndustryBenchmark, error) {
	query, args, err := squirrel.
		Select("id", "industry_l1", "industry_l2", "industry_code", "avg_ctr", "avg_cpc", "avg_conversion_rate").
		From(benchmarksTable).
		Where(squirrel.Eq{"industry_code": industryCode}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var benchmark domain.IndustryBenchmark
	err = r.conn.QueryRow(query, args...).Scan(
		&benchmark.ID,
		&benchmark.IndustryL1,
		&benchmark.IndustryL2,
		&benchmark.IndustryCode,
		&benchmark.AvgCTR,
		&benchmark.AvgCPC,
		&benchmark.AvgConversionRate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &benchmark, nil
}

func (r *benchmarkRepository) ListAll() ([]*domain.IndustryBenchmark, error) {
	query, args, err := squirrel.
		Select("id", "industry_l1", "industry_l2", "industry_code", "avg_ctr", "avg_cpc", "avg_conversion_rate").
		From(benchmarksTable).
		OrderBy("industry_l1 ASC", "industry_l2 ASC").
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

	benchmarks := make([]*domain.IndustryBenchmark, 0)
	for rows.Next() {
		var benchmark domain.IndustryBenchmark
		err := rows.Scan(
			&benchmark.ID,
			&benchmark.IndustryL1,
			&benchmark.IndustryL2,
			&benchmark.IndustryCode,
			&benchmark.AvgCTR,
			&benchmark.AvgCPC,
			&benchmark.AvgConversionRate,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear benchmark: %w", err)
		}
		benchmarks = append(benchmarks, &benchmark)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return benchmarks, nil
}
