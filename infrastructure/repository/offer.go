package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/autoads-api/infrastructure/database/postgres"
	"github.com/vfg2006/autoads-api/internal/domain"
)

const (
	offersTable = "offers"
)

type OfferRepository interface {
	Create(offer *domain.Offer) (*domain.Offer, error)
	Update(offer *domain.Offer) error
	GetByID(offerID int64) (*domain.Offer, error)
	ListByUser(userID int) ([]*domain.Offer, error)
	Delete(offerID int64) error
	UpdateScrapeResult(offer *domain.Offer) error
}

type offerRepository struct {
	conn *postgres.Connection
}

func NewOfferRepository(conn *postgres.Connection) OfferRepository {
	return &offerRepository{
		conn: conn,
	}
}

const offerColumns = `id, user_id, name, affiliate_link, final_url, final_url_suffix, brand,
	target_country, industry_code, page_title, description, scrape_status, scrape_method,
	scrape_proxy_used, scrape_status_code, scrape_error, created_at, updated_at`

func (r *offerRepository) Create(offer *domain.Offer) (*domain.Offer, error) {
	query, args, err := squirrel.
		Insert(offersTable).
		Columns("user_id", "name", "affiliate_link", "target_country", "scrape_status").
		Values(offer.UserID, offer.Name, offer.AffiliateLink, offer.TargetCountry, domain.OfferScrapePending).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		return nil, err
	}

	offer.ScrapeStatus = domain.OfferScrapePending
	return offer, nil
}

func (r *offerRepository) Update(offer *domain.Offer) error {
	query, args, err := squirrel.
		Update(offersTable).
		Set("name", offer.Name).
		Set("affiliate_link", offer.AffiliateLink).
		Set("target_country", offer.TargetCountry).
		Set("industry_code", offer.IndustryCode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": offer.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	return err
}

// UpdateScrapeResult persiste o desfecho de uma tentativa de scraping,
// incluindo os campos de auditoria do resolvedor (método, proxy, status).
func (r *offerRepository) UpdateScrapeResult(offer *domain.Offer) error {
	query, args, err := squirrel.
		Update(offersTable).
		Set("final_url", offer.FinalURL).
		Set("final_url_suffix", offer.FinalURLSuffix).
		Set("brand", offer.Brand).
		Set("industry_code", offer.IndustryCode).
		Set("page_title", offer.PageTitle).
		Set("description", offer.Description).
		Set("scrape_status", offer.ScrapeStatus).
		Set("scrape_method", offer.ScrapeMethod).
		Set("scrape_proxy_used", offer.ScrapeProxyUsed).
		Set("scrape_status_code", offer.ScrapeStatusCode).
		Set("scrape_error", offer.ScrapeError).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": offer.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	return err
}

func (r *offerRepository) GetByID(offerID int64) (*domain.Offer, error) {
	query, args, err := squirrel.
		Select(offerColumns).
		From(offersTable).
		Where(squirrel.Eq{"id": offerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	offer, err := r.scanOffer(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return offer, nil
}

func (r *offerRepository) ListByUser(userID int) ([]*domain.Offer, error) {
	query, args, err := squirrel.
		Select(offerColumns).
		From(offersTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		offer, err := r.scanOfferRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear offer: %w", err)
		}
		offers = append(offers, offer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return offers, nil
}

func (r *offerRepository) Delete(offerID int64) error {
	query, args, err := squirrel.
		Delete(offersTable).
		Where(squirrel.Eq{"id": offerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	return err
}

func (r *offerRepository) scanOffer(row *sql.Row) (*domain.Offer, error) {
	var offer domain.Offer
	err := row.Scan(
		&offer.ID,
		&offer.UserID,
		&offer.Name,
		&offer.AffiliateLink,
		&offer.FinalURL,
		&offer.FinalURLSuffix,
		&offer.Brand,
		&offer.TargetCountry,
		&offer.IndustryCode,
		&offer.PageTitle,
		&offer.Description,
		&offer.ScrapeStatus,
		&offer.ScrapeMethod,
		&offer.ScrapeProxyUsed,
		&offer.ScrapeStatusCode,
		&offer.ScrapeError,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) scanOfferRows(rows *sql.Rows) (*domain.Offer, error) {
	var offer domain.Offer
	err := rows.Scan(
		&offer.ID,
		&offer.UserID,
		&offer.Name,
		&offer.AffiliateLink,
		&offer.FinalURL,
		&offer.FinalURLSuffix,
		&offer.Brand,
		&offer.TargetCountry,
		&offer.IndustryCode,
		&offer.PageTitle,
		&offer.Description,
		&offer.ScrapeStatus,
		&offer.ScrapeMethod,
		&offer.ScrapeProxyUsed,
		&offer.ScrapeStatusCode,
		&offer.ScrapeError,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}
