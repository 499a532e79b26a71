package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, client_id, route_id, order_date, delivery_date, status,
	       payment_method, total, notes, created_at, updated_at`

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, client_id, route_id, order_date, delivery_date, status, payment_method, total, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.ClientID, o.RouteID, o.OrderDate, o.DeliveryDate,
		o.Status, o.PaymentMethod, o.Total, o.Notes)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertItems(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrdersByDeliveryDate(ctx context.Context, day time.Time, routeID string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE delivery_date=$1 AND status <> 'CANCELLED'`
	args := []interface{}{day}
	if routeID != "" {
		query += ` AND route_id=$2`
		args = append(args, routeID)
	}
	query += ` ORDER BY created_at ASC`
	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) ListOrdersByClient(ctx context.Context, clientID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE client_id=$1 ORDER BY created_at DESC`, clientID)
}

// ReplaceOrder rewrites the header and swaps every item in one transaction.
func (r *postgresRepo) ReplaceOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET delivery_date=$1, payment_method=$2, total=$3, notes=$4, updated_at=$5
		WHERE id=$6`,
		o.DeliveryDate, o.PaymentMethod, o.Total, o.Notes, time.Now(), o.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return fmt.Errorf("clear order_items: %w", err)
	}
	if err := insertItems(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

// DeleteOrder removes the order and its items atomically.
func (r *postgresRepo) DeleteOrder(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return fmt.Errorf("delete order_items: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return tx.Commit()
}

func (r *postgresRepo) GetProductInfo(ctx context.Context, productID string) (*ProductInfo, error) {
	info := &ProductInfo{}
	var special sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT name, category, variant_label, regular_price, special_price
		 FROM products WHERE id=$1 AND is_active=true`, productID).
		Scan(&info.Name, &info.Category, &info.VariantLabel, &info.RegularPrice, &special)
	if err != nil {
		return nil, err
	}
	if special.Valid {
		info.SpecialPrice = &special.Float64
	}
	return info, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func insertItems(ctx context.Context, tx *sql.Tx, o *Order) error {
	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_id, product_name, category, variant_label,
			   quantity, unit_price, line_total, special_price)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			item.ID, o.ID, item.ProductID, item.ProductName, item.Category,
			item.VariantLabel, item.Quantity, item.UnitPrice, item.LineTotal,
			item.SpecialPrice)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}

func scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	var routeID sql.NullString
	var delivery sql.NullTime
	err := row.Scan(
		&o.ID, &o.ClientID, &routeID, &o.OrderDate, &delivery, &o.Status,
		&o.PaymentMethod, &o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	applyNullables(o, routeID, delivery)
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		var routeID sql.NullString
		var delivery sql.NullTime
		if err := rows.Scan(
			&o.ID, &o.ClientID, &routeID, &o.OrderDate, &delivery, &o.Status,
			&o.PaymentMethod, &o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		applyNullables(o, routeID, delivery)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func applyNullables(o *Order, routeID sql.NullString, delivery sql.NullTime) {
	if routeID.Valid {
		rid, _ := uuid.Parse(routeID.String)
		o.RouteID = &rid
	}
	if delivery.Valid {
		d := delivery.Time
		o.DeliveryDate = &d
	}
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*OrderLineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, category, variant_label,
		       quantity, unit_price, line_total, special_price, created_at, updated_at
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*OrderLineItem
	for rows.Next() {
		item := &OrderLineItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Category, &item.VariantLabel,
			&item.Quantity, &item.UnitPrice, &item.LineTotal,
			&item.SpecialPrice, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
