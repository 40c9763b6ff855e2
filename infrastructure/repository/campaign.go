package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/autoads-api/infrastructure/database/postgres"
	"github.com/vfg2006/autoads-api/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

type CampaignRepository interface {
	Create(campaign *domain.Campaign) (*domain.Campaign, error)
	Update(campaign *domain.Campaign) error
	GetByID(campaignID int64) (*domain.Campaign, error)
	ListByUser(userID int) ([]*domain.Campaign, error)
	ListByOffer(offerID int64) ([]*domain.Campaign, error)
	Delete(campaignID int64) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = `id, user_id, offer_id, name, status, budget_amount, external_id,
	current_creative_id, created_at, updated_at`

func (r *campaignRepository) Create(campaign *domain.Campaign) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("user_id", "offer_id", "name", "status", "budget_amount").
		Values(campaign.UserID, campaign.OfferID, campaign.Name, domain.CampaignStatusDraft, campaign.BudgetAmount).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		return nil, err
	}

	campaign.Status = domain.CampaignStatusDraft
	return campaign, nil
}

func (r *campaignRepository) Update(campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("name", campaign.Name).
		Set("status", campaign.Status).
		Set("budget_amount", campaign.BudgetAmount).
		Set("external_id", campaign.ExternalID).
		Set("current_creative_id", campaign.CurrentCreativeID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaign.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	return err
}

func (r *campaignRepository) GetByID(campaignID int64) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var campaign domain.Campaign
	err = r.conn.QueryRow(query, args...).Scan(
		&campaign.ID,
		&campaign.UserID,
		&campaign.OfferID,
		&campaign.Name,
		&campaign.Status,
		&campaign.BudgetAmount,
		&campaign.ExternalID,
		&campaign.CurrentCreativeID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}

func (r *campaignRepository) ListByUser(userID int) ([]*domain.Campaign, error) {
	return r.list(squirrel.Eq{"user_id": userID})
}

func (r *campaignRepository) ListByOffer(offerID int64) ([]*domain.Campaign, error) {
	return r.list(squirrel.Eq{"offer_id": offerID})
}

func (r *campaignRepository) list(where squirrel.Eq) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(where).
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

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		var campaign domain.Campaign
		err := rows.Scan(
			&campaign.ID,
			&campaign.UserID,
			&campaign.OfferID,
			&campaign.Name,
			&campaign.Status,
			&campaign.BudgetAmount,
			&campaign.ExternalID,
			&campaign.CurrentCreativeID,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campaign: %w", err)
		}
		campaigns = append(campaigns, &campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) Delete(campaignID int64) error {
	query, args, err := squirrel.
		Delete(campaignsTable).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	return err
}
