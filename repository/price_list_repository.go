package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fnp-marketplace/db"
	"fnp-marketplace/logger"
	"fnp-marketplace/pricing"
	"fnp-marketplace/utils"
)

// PriceListRepository handles database operations for producer price lists.
// Category blocks live in one JSONB column holding only the visible categories.
type PriceListRepository struct{}

// NewPriceListRepository creates a new PriceListRepository
func NewPriceListRepository() *PriceListRepository {
	return &PriceListRepository{}
}

// Ensure PriceListRepository implements PriceListRepositoryInterface
var _ PriceListRepositoryInterface = (*PriceListRepository)(nil)

const priceListColumns = `id, client_id, client_name, client_specialization, effective_date,
	pricing_basis, categories, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPriceList(row rowScanner) (*pricing.ProducerPriceList, error) {
	var (
		l          pricing.ProducerPriceList
		basis      string
		categories []byte
	)
	if err := row.Scan(&l.ID, &l.ClientID, &l.ClientName, &l.ClientSpecialization, &l.EffectiveDate,
		&basis, &categories, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.PricingBasis = pricing.LiveWeight
	if b, ok := pricing.ParsePricingBasis(basis); ok {
		l.PricingBasis = b
	}
	if err := l.DecodeCategories(categories); err != nil {
		return nil, fmt.Errorf("price list %s: %w", l.ID, err)
	}
	return &l, nil
}

// List returns one page of price lists, newest effective date first, and the total match count
func (r *PriceListRepository) List(ctx context.Context, filter PriceListFilter, page utils.Page) ([]*pricing.ProducerPriceList, int, error) {
	var cond conditions
	if filter.ClientID != "" {
		cond.add("client_id = ?", filter.ClientID)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		cond.add("(client_name ILIKE ? OR client_specialization ILIKE ?)", p, p)
	}

	var total int
	if err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM producer_price_lists`+cond.where(), cond.args...).Scan(&total); err != nil {
		logger.Log.Errorf("❌ PriceListRepository.List: Error counting price lists: %v", err)
		return nil, 0, fmt.Errorf("failed to count price lists: %w", err)
	}

	limit, args := cond.page(page.Limit(), page.Offset())
	query := `SELECT ` + priceListColumns + ` FROM producer_price_lists` + cond.where() +
		` ORDER BY effective_date DESC, created_at DESC` + limit

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Log.Errorf("❌ PriceListRepository.List: Error querying price lists: %v", err)
		return nil, 0, fmt.Errorf("failed to query price lists: %w", err)
	}
	defer rows.Close()

	lists := make([]*pricing.ProducerPriceList, 0, page.Limit())
	for rows.Next() {
		l, err := scanPriceList(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan price list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate price lists: %w", err)
	}

	logger.Log.Debugf("🔍 PriceListRepository.List: page=%d size=%d returned=%d total=%d", page.Number, page.Size, len(lists), total)
	return lists, total, nil
}

// GetByID returns one price list or ErrNotFound
func (r *PriceListRepository) GetByID(ctx context.Context, id string) (*pricing.ProducerPriceList, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := db.DB.QueryRowContext(ctx, `SELECT `+priceListColumns+` FROM producer_price_lists WHERE id = $1`, id)
	l, err := scanPriceList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price list: %w", err)
	}
	return l, nil
}

// Create inserts list, assigning its id and timestamps
func (r *PriceListRepository) Create(ctx context.Context, list *pricing.ProducerPriceList) error {
	categories, err := list.EncodeCategories()
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	list.ID = uuid.NewString()
	now := time.Now().UTC()
	list.CreatedAt, list.UpdatedAt = now, now

	query := `
		INSERT INTO producer_price_lists (` + priceListColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = db.DB.ExecContext(ctx, query, list.ID, list.ClientID, list.ClientName, list.ClientSpecialization,
		list.EffectiveDate, string(list.PricingBasis), categories, list.CreatedAt, list.UpdatedAt)
	if err != nil {
		logger.Log.Errorf("❌ PriceListRepository.Create: Error inserting price list: %v", err)
		return fmt.Errorf("failed to insert price list: %w", err)
	}

	logger.Log.Infof("💾 PriceListRepository.Create: id=%s client_id=%s", list.ID, list.ClientID)
	return nil
}

// Update overwrites every field of list. Concurrent edits are last write wins.
func (r *PriceListRepository) Update(ctx context.Context, list *pricing.ProducerPriceList) error {
	if _, err := uuid.Parse(list.ID); err != nil {
		return ErrNotFound
	}
	categories, err := list.EncodeCategories()
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	list.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE producer_price_lists
		SET client_id = $2, client_name = $3, client_specialization = $4, effective_date = $5,
		    pricing_basis = $6, categories = $7, updated_at = $8
		WHERE id = $1
		RETURNING created_at
	`
	err = db.DB.QueryRowContext(ctx, query, list.ID, list.ClientID, list.ClientName, list.ClientSpecialization,
		list.EffectiveDate, string(list.PricingBasis), categories, list.UpdatedAt).Scan(&list.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		logger.Log.Errorf("❌ PriceListRepository.Update: Error updating price list id=%s: %v", list.ID, err)
		return fmt.Errorf("failed to update price list: %w", err)
	}
	return nil
}

// Delete removes a price list
func (r *PriceListRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := db.DB.ExecContext(ctx, `DELETE FROM producer_price_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete price list: %w", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete price list: %w", err)
	}
	return nil
}
