package postgres

import (
	"catalog/app"
	"catalog/app/imports"
	"catalog/domain"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, database,
	))

	// Connection pool configuration
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

// GetPoolStats returns current connection pool statistics
func (r *PgRepository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}
}

// ---- categories ----

func (r *PgRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	query := `SELECT * FROM product_categories ORDER BY sort_order ASC, name ASC`

	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *PgRepository) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	query := `SELECT * FROM product_categories WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	return c, err
}

func (r *PgRepository) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	var c domain.Category
	query := `SELECT * FROM product_categories WHERE slug = $1`

	err := r.db.GetContext(ctx, &c, query, slug)
	return c, err
}

func (r *PgRepository) CreateCategory(ctx context.Context, req *app.CreateCategoryRequest) (domain.Category, error) {
	var c domain.Category
	query := `
		INSERT INTO product_categories (
			name, slug, description, image_url, parent_id, sort_order
		) VALUES (
			:name, :slug, :description, :image_url, :parent_id, :sort_order
		) RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, req)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&c)
	}
	return c, err
}

func (r *PgRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE product_categories SET
			name = :name,
			slug = :slug,
			description = :description,
			image_url = :image_url,
			parent_id = :parent_id,
			sort_order = :sort_order,
			updated_at = now()
		WHERE id = :id
	`

	_, err := r.db.NamedExecContext(ctx, query, category)
	return err
}

// DeleteCategory removes a category and detaches its products and
// child categories inside one transaction, so nothing keeps pointing
// at the deleted row.
func (r *PgRepository) DeleteCategory(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE products SET category_id = NULL WHERE category_id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE product_categories SET parent_id = NULL WHERE parent_id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_categories WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// ---- import pipeline surface ----

func (r *PgRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return r.GetCategories(ctx)
}

// ResolveCategory is a conditional insert keyed on slug. The no-op
// DO UPDATE makes RETURNING yield the surviving row whether it was
// just created or already existed, so concurrent imports naming the
// same category converge without a find-then-create race.
func (r *PgRepository) ResolveCategory(ctx context.Context, rec *imports.CategoryRecord) (domain.Category, bool, error) {
	var result struct {
		domain.Category
		Inserted bool `db:"inserted"`
	}

	query := `
		INSERT INTO product_categories (name, slug, parent_id, sort_order)
		VALUES (:name, :slug, :parent_id, :sort_order)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING *, (xmax = 0) AS inserted`

	rows, err := r.db.NamedQueryContext(ctx, query, rec)
	if err != nil {
		return domain.Category{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Category{}, false, fmt.Errorf("category upsert returned no row for slug %s", rec.Slug)
	}

	if err := rows.StructScan(&result); err != nil {
		return domain.Category{}, false, err
	}

	return result.Category, result.Inserted, nil
}

func (r *PgRepository) InsertProduct(ctx context.Context, rec *imports.ProductRecord) (domain.Product, error) {
	var p domain.Product
	query := `
		INSERT INTO products (
			name, slug, description, specifications, image_url,
			category_id, is_featured, sort_order
		) VALUES (
			:name, :slug, :description, :specifications, :image_url,
			:category_id, :is_featured, :sort_order
		) RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, rec)
	if err != nil {
		return p, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&p)
	}
	return p, err
}

// ---- products ----

func (r *PgRepository) GetProducts(ctx context.Context, categoryID *string, limit, offset int) ([]domain.Product, error) {
	products := make([]domain.Product, 0)

	if categoryID != nil {
		query := `SELECT * FROM products WHERE category_id = $1 ORDER BY sort_order ASC, created_at DESC LIMIT $2 OFFSET $3`
		if err := r.db.SelectContext(ctx, &products, query, *categoryID, limit, offset); err != nil {
			return nil, err
		}
		return products, nil
	}

	query := `SELECT * FROM products ORDER BY sort_order ASC, created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &products, query, limit, offset); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PgRepository) CountProducts(ctx context.Context, categoryID *string) (int, error) {
	var count int

	if categoryID != nil {
		err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE category_id = $1`, *categoryID)
		return count, err
	}

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`)
	return count, err
}

func (r *PgRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	query := `SELECT * FROM products WHERE is_featured ORDER BY sort_order ASC LIMIT $1`

	err := r.db.SelectContext(ctx, &products, query, limit)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PgRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	return p, err
}

func (r *PgRepository) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	var p domain.Product
	query := `SELECT * FROM products WHERE slug = $1`

	err := r.db.GetContext(ctx, &p, query, slug)
	return p, err
}

func (r *PgRepository) CreateProduct(ctx context.Context, req *app.CreateProductRequest) (domain.Product, error) {
	var p domain.Product
	query := `
		INSERT INTO products (
			name, slug, description, specifications, image_url,
			category_id, is_featured, sort_order
		) VALUES (
			:name, :slug, :description, :specifications, :image_url,
			:category_id, :is_featured, :sort_order
		) RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, req)
	if err != nil {
		return p, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&p)
	}
	return p, err
}

func (r *PgRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			slug = :slug,
			description = :description,
			specifications = :specifications,
			image_url = :image_url,
			category_id = :category_id,
			is_featured = :is_featured,
			sort_order = :sort_order,
			updated_at = now()
		WHERE id = :id
	`

	_, err := r.db.NamedExecContext(ctx, query, product)
	return err
}

func (r *PgRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *PgRepository) DeleteProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	deleted := make([]domain.Product, 0, len(ids))
	query := `DELETE FROM products WHERE id = ANY($1) RETURNING *`

	err := r.db.SelectContext(ctx, &deleted, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// ---- site settings ----

func (r *PgRepository) GetSettings(ctx context.Context) ([]domain.SiteSetting, error) {
	settings := make([]domain.SiteSetting, 0)
	query := `SELECT * FROM site_settings ORDER BY key ASC`

	err := r.db.SelectContext(ctx, &settings, query)
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *PgRepository) UpdateSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO site_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}

// ---- contact messages ----

func (r *PgRepository) CreateContactMessage(ctx context.Context, req *app.CreateContactMessageRequest) (domain.ContactMessage, error) {
	var m domain.ContactMessage
	query := `
		INSERT INTO contact_messages (name, email, phone, message)
		VALUES (:name, :email, :phone, :message)
		RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, req)
	if err != nil {
		return m, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&m)
	}
	return m, err
}

func (r *PgRepository) GetContactMessages(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	messages := make([]domain.ContactMessage, 0)
	query := `SELECT * FROM contact_messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.SelectContext(ctx, &messages, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *PgRepository) CountContactMessages(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contact_messages`)
	return count, err
}
