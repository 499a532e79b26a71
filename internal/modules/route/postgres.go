package route

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateRoute(ctx context.Context, rt *Route) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO routes (id, code, name, is_active)
		VALUES ($1,$2,$3,$4)`,
		rt.ID, rt.Code, rt.Name, rt.IsActive)
	return err
}

func (r *postgresRepo) GetRouteByID(ctx context.Context, id string) (*Route, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	rt := &Route{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, code, name, is_active, created_at, updated_at
		FROM routes WHERE id=$1`, uid).
		Scan(&rt.ID, &rt.Code, &rt.Name, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *postgresRepo) ListRoutes(ctx context.Context, activeOnly bool) ([]*Route, error) {
	query := `SELECT id, code, name, is_active, created_at, updated_at FROM routes`
	if activeOnly {
		query += ` WHERE is_active=true`
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var routes []*Route
	for rows.Next() {
		rt := &Route{}
		if err := rows.Scan(&rt.ID, &rt.Code, &rt.Name, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *postgresRepo) CreateClient(ctx context.Context, c *Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, route_id, is_active)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.Name, c.RouteID, c.IsActive)
	return err
}

func (r *postgresRepo) GetClientByID(ctx context.Context, id string) (*Client, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, route_id, is_active, created_at, updated_at
		FROM clients WHERE id=$1`, uid)
	return scanClient(row.Scan)
}

func (r *postgresRepo) ListClients(ctx context.Context, routeID string, activeOnly bool) ([]*Client, error) {
	query := `SELECT id, name, route_id, is_active, created_at, updated_at FROM clients WHERE 1=1`
	args := []interface{}{}
	n := 1
	if routeID != "" {
		query += fmt.Sprintf(" AND route_id=$%d", n)
		args = append(args, routeID)
		n++
	}
	if activeOnly {
		query += " AND is_active=true"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clients []*Client
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func scanClient(scan func(...interface{}) error) (*Client, error) {
	c := &Client{}
	var routeID sql.NullString
	err := scan(&c.ID, &c.Name, &routeID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if routeID.Valid {
		rid, _ := uuid.Parse(routeID.String)
		c.RouteID = &rid
	}
	return c, nil
}
