package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/autoads-api/infrastructure/database/postgres"
	"github.com/vfg2006/autoads-api/internal/domain"
)

const (
	creativesTable = "ad_creatives"
)

type CreativeRepository interface {
	Create(creative *domain.Creative) (*domain.Creative, error)
	GetByID(creativeID int64) (*domain.Creative, error)
	ListByOffer(offerID int64) ([]*domain.Creative, error)
	ListByUser(userID int) ([]*domain.Creative, error)
	Delete(creativeID int64) error
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

const creativeColumns = `id, user_id, offer_id, version, headlines, descriptions, external_id,
	generated, created_at, updated_at`

func (r *creativeRepository) Create(creative *domain.Creative) (*domain.Creative, error) {
	// A versão é sequencial por oferta
	query, args, err := squirrel.
		Insert(creativesTable).
		Columns("user_id", "offer_id", "version", "headlines", "descriptions", "generated").
		Values(
			creative.UserID,
			creative.OfferID,
			squirrel.Expr(
				"(SELECT COALESCE(MAX(version), 0) + 1 FROM ad_creatives WHERE offer_id = ?)",
				creative.OfferID,
			),
			pq.Array(creative.Headlines),
			pq.Array(creative.Descriptions),
			creative.Generated,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(
		&creative.ID,
		&creative.Version,
		&creative.CreatedAt,
		&creative.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return creative, nil
}

func (r *creativeRepository) GetByID(creativeID int64) (*domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns).
		From(creativesTable).
		Where(squirrel.Eq{"id": creativeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var creative domain.Creative
	err = r.conn.QueryRow(query, args...).Scan(
		&creative.ID,
		&creative.UserID,
		&creative.OfferID,
		&creative.Version,
		pq.Array(&creative.Headlines),
		pq.Array(&creative.Descriptions),
		&creative.ExternalID,
		&creative.Generated,
		&creative.CreatedAt,
		&creative.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &creative, nil
}

func (r *creativeRepository) ListByOffer(offerID int64) ([]*domain.Creative, error) {
	return r.list(squirrel.Eq{"offer_id": offerID})
}

func (r *creativeRepository) ListByUser(userID int) ([]*domain.Creative, error) {
	return r.list(squirrel.Eq{"user_id": userID})
}

func (r *creativeRepository) list(where squirrel.Eq) ([]*domain.Creative, error) {
	query, args, err := squirrel.
		Select(creativeColumns).
		From(creativesTable).
		Where(where).
		OrderBy("offer_id ASC", "version ASC").
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

	creatives := make([]*domain.Creative, 0)
	for rows.Next() {
		var creative domain.Creative
		err := rows.Scan(
			&creative.ID,
			&creative.UserID,
			&creative.OfferID,
			&creative.Version,
			pq.Array(&creative.Headlines),
			pq.Array(&creative.Descriptions),
			&creative.ExternalID,
			&creative.Generated,
			&creative.CreatedAt,
			&creative.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear creative: %w", err)
		}
		creatives = append(creatives, &creative)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return creatives, nil
}

func (r *creativeRepository) Delete(creativeID int64) error {
	query, args, err := squirrel.
		Delete(creativesTable).
		Where(squirrel.Eq{"id": creativeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	return err
}
