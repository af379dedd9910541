package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.CategoryRepository          = (*CategoryRepo)(nil)
	_ repository.UnitOfMeasurementRepository = (*UnitOfMeasurementRepo)(nil)
)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE id = $1`, id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM categories WHERE name = $1 ORDER BY created_at, id LIMIT 1`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var w where
	if search != "" {
		w.add("name ILIKE ?", likePattern(search))
	}
	query := `SELECT id, name, created_at FROM categories` + w.sql() + ` ORDER BY name, id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := []*entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina la categoría; ON DELETE CASCADE arrastra productos, entradas y salidas.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// UnitOfMeasurementRepo implementación del puerto UnitOfMeasurementRepository sobre PostgreSQL.
type UnitOfMeasurementRepo struct {
	q Querier
}

// NewUnitOfMeasurementRepository construye el adaptador de unidades de medida.
func NewUnitOfMeasurementRepository(q Querier) *UnitOfMeasurementRepo {
	return &UnitOfMeasurementRepo{q: q}
}

func (r *UnitOfMeasurementRepo) Create(ctx context.Context, u *entity.UnitOfMeasurement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO units_of_measurement (id, name, created_at) VALUES ($1, $2, $3)`,
		u.ID, u.Name, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert unit of measurement: %w", err)
	}
	return nil
}

func (r *UnitOfMeasurementRepo) GetByID(ctx context.Context, id string) (*entity.UnitOfMeasurement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT id, name, created_at FROM units_of_measurement WHERE id = $1`, id)
}

func (r *UnitOfMeasurementRepo) GetByName(ctx context.Context, name string) (*entity.UnitOfMeasurement, error) {
	return r.getOne(ctx, `SELECT id, name, created_at FROM units_of_measurement WHERE name = $1 ORDER BY created_at, id LIMIT 1`, name)
}

func (r *UnitOfMeasurementRepo) getOne(ctx context.Context, query string, arg any) (*entity.UnitOfMeasurement, error) {
	var u entity.UnitOfMeasurement
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit of measurement: %w", err)
	}
	return &u, nil
}

func (r *UnitOfMeasurementRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.UnitOfMeasurement, error) {
	var w where
	if search != "" {
		w.add("name ILIKE ?", likePattern(search))
	}
	query := `SELECT id, name, created_at FROM units_of_measurement` + w.sql() + ` ORDER BY name, id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list units of measurement: %w", err)
	}
	defer rows.Close()
	list := []*entity.UnitOfMeasurement{}
	for rows.Next() {
		var u entity.UnitOfMeasurement
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit of measurement: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina la unidad; ON DELETE CASCADE arrastra los productos que la usan.
func (r *UnitOfMeasurementRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM units_of_measurement WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete unit of measurement: %w", err)
	}
	return nil
}
