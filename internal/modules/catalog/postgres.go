package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, category, variant_label, regular_price, special_price, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Category, p.VariantLabel, p.RegularPrice, p.SpecialPrice, p.IsActive)
	return err
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var special sql.NullFloat64
	err := scan(&p.ID, &p.Name, &p.Category, &p.VariantLabel,
		&p.RegularPrice, &special, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if special.Valid {
		p.SpecialPrice = &special.Float64
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, variant_label, regular_price, special_price, is_active, created_at, updated_at
		FROM products WHERE id=$1`, uid)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	query := `SELECT id, name, category, variant_label, regular_price, special_price, is_active, created_at, updated_at
	          FROM products WHERE 1=1`
	args := []interface{}{}
	n := 1
	if category != "" {
		query += fmt.Sprintf(" AND category=$%d", n)
		args = append(args, category)
		n++
	}
	if activeOnly {
		query += " AND is_active=true"
	}
	query += " ORDER BY category, name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, category=$2, variant_label=$3, regular_price=$4, special_price=$5, updated_at=$6
		WHERE id=$7`,
		p.Name, p.Category, p.VariantLabel, p.RegularPrice, p.SpecialPrice, time.Now(), p.ID)
	return err
}

func (r *postgresRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active=false, updated_at=$1 WHERE id=$2`, time.Now(), id)
	return err
}
