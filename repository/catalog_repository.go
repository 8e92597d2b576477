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
	"fnp-marketplace/models"
	"fnp-marketplace/utils"
)

// BrandRepository handles database operations for brands
type BrandRepository struct{}

// NewBrandRepository creates a new BrandRepository
func NewBrandRepository() *BrandRepository {
	return &BrandRepository{}
}

// Ensure BrandRepository implements BrandRepositoryInterface
var _ BrandRepositoryInterface = (*BrandRepository)(nil)

const brandColumns = `id, name, description, image_url, created_at`

func scanBrand(row rowScanner) (*models.Brand, error) {
	var b models.Brand
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.ImageURL, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns one page of brands ordered by name
func (r *BrandRepository) List(ctx context.Context, search string, page utils.Page) ([]*models.Brand, int, error) {
	var cond conditions
	if search != "" {
		cond.add("name ILIKE ?", likePattern(search))
	}
	return listRows(ctx, "brands", brandColumns, "name, id", cond, page, scanBrand)
}

// GetByID returns one brand or ErrNotFound
func (r *BrandRepository) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	return getRow(ctx, "brands", brandColumns, id, scanBrand)
}

// Create inserts a brand, assigning its id
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	brand.ID = uuid.NewString()
	brand.CreatedAt = time.Now().UTC()
	_, err := db.DB.ExecContext(ctx, `INSERT INTO brands (`+brandColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		brand.ID, brand.Name, brand.Description, brand.ImageURL, brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert brand: %w", err)
	}
	logger.Log.Infof("💾 BrandRepository.Create: id=%s name=%s", brand.ID, brand.Name)
	return nil
}

// Update overwrites a brand
func (r *BrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	return execByID(ctx, brand.ID, "update brand",
		`UPDATE brands SET name = $2, description = $3, image_url = $4 WHERE id = $1`,
		brand.Name, brand.Description, brand.ImageURL)
}

// Delete removes a brand. Its products keep existing without a brand.
func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	return execByID(ctx, id, "delete brand", `DELETE FROM brands WHERE id = $1`)
}

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, name, COALESCE(brand_id::text, ''), category, description, price, image_url, created_at`

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.BrandID, &p.Category, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of products, optionally narrowed by search text and brand
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter, page utils.Page) ([]*models.Product, int, error) {
	var cond conditions
	if filter.BrandID != "" {
		if _, err := uuid.Parse(filter.BrandID); err != nil {
			return []*models.Product{}, 0, nil
		}
		cond.add("brand_id = ?", filter.BrandID)
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		cond.add("(name ILIKE ? OR category ILIKE ?)", p, p)
	}
	return listRows(ctx, "products", productColumns, "name, id", cond, page, scanProduct)
}

// GetByID returns one product or ErrNotFound
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return getRow(ctx, "products", productColumns, id, scanProduct)
}

// Create inserts a product, assigning its id
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO products (id, name, brand_id, category, description, price, image_url, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8)
	`
	_, err := db.DB.ExecContext(ctx, query, product.ID, product.Name, product.BrandID, product.Category,
		product.Description, product.Price, product.ImageURL, product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	logger.Log.Infof("💾 ProductRepository.Create: id=%s name=%s", product.ID, product.Name)
	return nil
}

// Update overwrites a product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return execByID(ctx, product.ID, "update product", `
		UPDATE products
		SET name = $2, brand_id = NULLIF($3, '')::uuid, category = $4, description = $5, price = $6, image_url = $7
		WHERE id = $1
	`, product.Name, product.BrandID, product.Category, product.Description, product.Price, product.ImageURL)
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return execByID(ctx, id, "delete product", `DELETE FROM products WHERE id = $1`)
}

// FarmProduceRepository handles database operations for farm produce
type FarmProduceRepository struct{}

// NewFarmProduceRepository creates a new FarmProduceRepository
func NewFarmProduceRepository() *FarmProduceRepository {
	return &FarmProduceRepository{}
}

// Ensure FarmProduceRepository implements FarmProduceRepositoryInterface
var _ FarmProduceRepositoryInterface = (*FarmProduceRepository)(nil)

const farmProduceColumns = `id, name, category, description, created_at`

func scanFarmProduce(row rowScanner) (*models.FarmProduce, error) {
	var fp models.FarmProduce
	if err := row.Scan(&fp.ID, &fp.Name, &fp.Category, &fp.Description, &fp.CreatedAt); err != nil {
		return nil, err
	}
	return &fp, nil
}

// List returns one page of farm produce ordered by category then name
func (r *FarmProduceRepository) List(ctx context.Context, search string, page utils.Page) ([]*models.FarmProduce, int, error) {
	var cond conditions
	if search != "" {
		p := likePattern(search)
		cond.add("(name ILIKE ? OR category ILIKE ?)", p, p)
	}
	return listRows(ctx, "farm_produce", farmProduceColumns, "category, name, id", cond, page, scanFarmProduce)
}

// GetByID returns one farm produce line or ErrNotFound
func (r *FarmProduceRepository) GetByID(ctx context.Context, id string) (*models.FarmProduce, error) {
	return getRow(ctx, "farm_produce", farmProduceColumns, id, scanFarmProduce)
}

// Create inserts a farm produce line, assigning its id
func (r *FarmProduceRepository) Create(ctx context.Context, produce *models.FarmProduce) error {
	produce.ID = uuid.NewString()
	produce.CreatedAt = time.Now().UTC()
	_, err := db.DB.ExecContext(ctx, `INSERT INTO farm_produce (`+farmProduceColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		produce.ID, produce.Name, produce.Category, produce.Description, produce.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert farm produce: %w", err)
	}
	return nil
}

// Update overwrites a farm produce line
func (r *FarmProduceRepository) Update(ctx context.Context, produce *models.FarmProduce) error {
	return execByID(ctx, produce.ID, "update farm produce",
		`UPDATE farm_produce SET name = $2, category = $3, description = $4 WHERE id = $1`,
		produce.Name, produce.Category, produce.Description)
}

// Delete removes a farm produce line
func (r *FarmProduceRepository) Delete(ctx context.Context, id string) error {
	return execByID(ctx, id, "delete farm produce", `DELETE FROM farm_produce WHERE id = $1`)
}

// ImageRepository records uploaded images and the store holding them
type ImageRepository struct{}

// NewImageRepository creates a new ImageRepository
func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

// Ensure ImageRepository implements ImageRepositoryInterface
var _ ImageRepositoryInterface = (*ImageRepository)(nil)

const imageColumns = `id, store, object_key, url, thumb_key, thumb_url, content_type, size_bytes, created_at`

func scanImage(row rowScanner) (*models.Image, error) {
	var img models.Image
	if err := row.Scan(&img.ID, &img.Store, &img.ObjectKey, &img.URL, &img.ThumbKey, &img.ThumbURL, &img.ContentType, &img.SizeBytes, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

// GetByID returns one image record or ErrNotFound
func (r *ImageRepository) GetByID(ctx context.Context, id string) (*models.Image, error) {
	return getRow(ctx, "images", imageColumns, id, scanImage)
}

// Create inserts an image record. The id is chosen by the caller so it can double as the object key.
func (r *ImageRepository) Create(ctx context.Context, image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	image.CreatedAt = time.Now().UTC()
	_, err := db.DB.ExecContext(ctx, `INSERT INTO images (`+imageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		image.ID, image.Store, image.ObjectKey, image.URL, image.ThumbKey, image.ThumbURL,
		image.ContentType, image.SizeBytes, image.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}

// Delete removes an image record
func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	return execByID(ctx, id, "delete image", `DELETE FROM images WHERE id = $1`)
}

func listRows[T any](ctx context.Context, table, columns, orderBy string, cond conditions, page utils.Page,
	scan func(rowScanner) (T, error)) ([]T, int, error) {
	var total int
	if err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+cond.where(), cond.args...).Scan(&total); err != nil {
		logger.Log.Errorf("❌ List %s: Error counting rows: %v", table, err)
		return nil, 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	limit, args := cond.page(page.Limit(), page.Offset())
	rows, err := db.DB.QueryContext(ctx, `SELECT `+columns+` FROM `+table+cond.where()+` ORDER BY `+orderBy+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]T, 0, page.Limit())
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return out, total, nil
}

func getRow[T any](ctx context.Context, table, columns, id string, scan func(rowScanner) (T, error)) (T, error) {
	var zero T
	if _, err := uuid.Parse(id); err != nil {
		return zero, ErrNotFound
	}
	v, err := scan(db.DB.QueryRowContext(ctx, `SELECT `+columns+` FROM `+table+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	return v, nil
}

func execByID(ctx context.Context, id, action, query string, args ...any) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := db.DB.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return checkAffected(res.RowsAffected())
}
