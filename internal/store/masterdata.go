package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT "id", "category", "type", "subtype"
FROM "Category"
ORDER BY "category" ASC, "type" ASC, "subtype" ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Category, &c.Type, &c.Subtype); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}
	return categories, nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (Category, error) {
	var c Category
	if err := r.db.QueryRowContext(ctx, `
SELECT "id", "category", "type", "subtype"
FROM "Category"
WHERE "id" = $1`, id).Scan(&c.ID, &c.Category, &c.Type, &c.Subtype); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *Repository) CreateCategory(ctx context.Context, in CategoryInput) (Category, error) {
	c := Category{Category: in.Category, Type: in.Type, Subtype: in.Subtype}
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "Category" ("category", "type", "subtype")
VALUES ($1, $2, $3)
RETURNING "id"`, in.Category, in.Type, in.Subtype).Scan(&c.ID); err != nil {
		return Category{}, translateConflict(err, "create category")
	}
	return c, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (Category, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "Category"
SET "category" = $2, "type" = $3, "subtype" = $4
WHERE "id" = $1`, id, in.Category, in.Type, in.Subtype)
	if err != nil {
		return Category{}, translateConflict(err, "update category")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Category{}, fmt.Errorf("update category rows affected: %w", err)
	}
	if rows == 0 {
		return Category{}, ErrNotFound
	}
	return Category{ID: id, Category: in.Category, Type: in.Type, Subtype: in.Subtype}, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "Category" WHERE "id" = $1`, id, "delete category")
}

func (r *Repository) ListCategoryFilterValues(ctx context.Context) (CategoryFilterValues, error) {
	var values CategoryFilterValues
	var err error
	if values.Categories, err = r.distinctValues(ctx, `
SELECT DISTINCT "category" FROM "Category" WHERE "category" <> '' ORDER BY "category" ASC`); err != nil {
		return CategoryFilterValues{}, fmt.Errorf("list category names: %w", err)
	}
	if values.Types, err = r.distinctValues(ctx, `
SELECT DISTINCT "type" FROM "Category" WHERE "type" <> '' ORDER BY "type" ASC`); err != nil {
		return CategoryFilterValues{}, fmt.Errorf("list category types: %w", err)
	}
	if values.Subtypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "subtype" FROM "Category" WHERE "subtype" <> '' ORDER BY "subtype" ASC`); err != nil {
		return CategoryFilterValues{}, fmt.Errorf("list category subtypes: %w", err)
	}
	return values, nil
}

func (r *Repository) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT "id", "name"
FROM "Department"
ORDER BY "name" ASC`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	departments := make([]Department, 0)
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan department row: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate department rows: %w", err)
	}
	return departments, nil
}

func (r *Repository) GetDepartment(ctx context.Context, id int64) (Department, error) {
	var d Department
	if err := r.db.QueryRowContext(ctx, `
SELECT "id", "name"
FROM "Department"
WHERE "id" = $1`, id).Scan(&d.ID, &d.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Department{}, ErrNotFound
		}
		return Department{}, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

func (r *Repository) CreateDepartment(ctx context.Context, name string) (Department, error) {
	d := Department{Name: name}
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "Department" ("name")
VALUES ($1)
RETURNING "id"`, name).Scan(&d.ID); err != nil {
		return Department{}, translateConflict(err, "create department")
	}
	return d, nil
}

func (r *Repository) UpdateDepartment(ctx context.Context, id int64, name string) (Department, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "Department"
SET "name" = $2
WHERE "id" = $1`, id, name)
	if err != nil {
		return Department{}, translateConflict(err, "update department")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Department{}, fmt.Errorf("update department rows affected: %w", err)
	}
	if rows == 0 {
		return Department{}, ErrNotFound
	}
	return Department{ID: id, Name: name}, nil
}

func (r *Repository) DeleteDepartment(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "Department" WHERE "id" = $1`, id, "delete department")
}

const sellerSelect = `
SELECT "id", "code", "prefix", "name", "business", "address", "phone", "fax", "mobile"
FROM "Seller"`

func scanSeller(row interface{ Scan(dest ...any) error }) (Seller, error) {
	var s Seller
	err := row.Scan(&s.ID, &s.Code, &s.Prefix, &s.Name, &s.Business, &s.Address, &s.Phone, &s.Fax, &s.Mobile)
	return s, err
}

func (r *Repository) ListSellers(ctx context.Context) ([]Seller, error) {
	rows, err := r.db.QueryContext(ctx, sellerSelect+`
ORDER BY "code" ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sellers := make([]Seller, 0)
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller row: %w", err)
		}
		sellers = append(sellers, seller)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seller rows: %w", err)
	}
	return sellers, nil
}

func (r *Repository) GetSeller(ctx context.Context, id int64) (Seller, error) {
	seller, err := scanSeller(r.db.QueryRowContext(ctx, sellerSelect+`
WHERE "id" = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Seller{}, ErrNotFound
		}
		return Seller{}, fmt.Errorf("get seller: %w", err)
	}
	return seller, nil
}

func (r *Repository) CreateSeller(ctx context.Context, in SellerInput) (Seller, error) {
	seller := Seller{
		Code:     in.Code,
		Prefix:   in.Prefix,
		Name:     in.Name,
		Business: in.Business,
		Address:  in.Address,
		Phone:    in.Phone,
		Fax:      in.Fax,
		Mobile:   in.Mobile,
	}
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "Seller" ("code", "prefix", "name", "business", "address", "phone", "fax", "mobile")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING "id"`,
		in.Code, in.Prefix, in.Name, in.Business, in.Address, in.Phone, in.Fax, in.Mobile,
	).Scan(&seller.ID); err != nil {
		return Seller{}, translateConflict(err, "create seller")
	}
	return seller, nil
}

func (r *Repository) UpdateSeller(ctx context.Context, id int64, in SellerInput) (Seller, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "Seller"
SET "code" = $2, "prefix" = $3, "name" = $4, "business" = $5, "address" = $6, "phone" = $7, "fax" = $8, "mobile" = $9
WHERE "id" = $1`,
		id, in.Code, in.Prefix, in.Name, in.Business, in.Address, in.Phone, in.Fax, in.Mobile)
	if err != nil {
		return Seller{}, translateConflict(err, "update seller")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Seller{}, fmt.Errorf("update seller rows affected: %w", err)
	}
	if rows == 0 {
		return Seller{}, ErrNotFound
	}
	return Seller{
		ID:       id,
		Code:     in.Code,
		Prefix:   in.Prefix,
		Name:     in.Name,
		Business: in.Business,
		Address:  in.Address,
		Phone:    in.Phone,
		Fax:      in.Fax,
		Mobile:   in.Mobile,
	}, nil
}

func (r *Repository) DeleteSeller(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "Seller" WHERE "id" = $1`, id, "delete seller")
}

func (r *Repository) deleteByID(ctx context.Context, query string, id int64, op string) error {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
