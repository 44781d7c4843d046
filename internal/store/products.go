package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var productOrderColumns = map[string]string{
	"id":        `"id"`,
	"code":      `"code"`,
	"name":      `"name"`,
	"category":  `"category"`,
	"type":      `"type"`,
	"subtype":   `"subtype"`,
	"costPrice": `"costPrice"`,
	"sellPrice": `"sellPrice"`,
}

const productSelect = `
SELECT "id", "code", "category", "name", "type", "subtype", "unit", "costPrice", "sellPrice", "stockBalance", "stockValue", "sellerCode", "image", "flagActivate", "adminNote"
FROM "Product"`

func scanProduct(row interface{ Scan(dest ...any) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Category,
		&p.Name,
		&p.Type,
		&p.Subtype,
		&p.Unit,
		&p.CostPrice,
		&p.SellPrice,
		&p.StockBalance,
		&p.StockValue,
		&p.SellerCode,
		&p.Image,
		&p.FlagActivate,
		&p.AdminNote,
	)
	return p, err
}

func (r *Repository) ListProducts(ctx context.Context, f ProductFilter) ([]Product, int, error) {
	var clauses filterClauses
	clauses.add(`"name"`, f.Name)
	clauses.add(`"category"`, f.Category)
	clauses.add(`"type"`, f.Type)
	clauses.add(`"subtype"`, f.Subtype)
	where := clauses.where()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Product"`+where, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit, _, _ := pageClause(f.Page, f.PageSize)
	rows, err := r.db.QueryContext(ctx, productSelect+where+orderClause(productOrderColumns, f.OrderBy, f.SortDesc)+limit, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, total, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+`
WHERE "id" = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (r *Repository) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	flagActivate := true
	if in.FlagActivate != nil {
		flagActivate = *in.FlagActivate
	}

	query := `
INSERT INTO "Product" ("code", "category", "name", "type", "subtype", "unit", "costPrice", "sellPrice", "stockBalance", "stockValue", "sellerCode", "image", "flagActivate", "adminNote")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING "id"`

	product := Product{
		Code:         in.Code,
		Category:     in.Category,
		Name:         in.Name,
		Type:         in.Type,
		Subtype:      in.Subtype,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellPrice:    in.SellPrice,
		StockBalance: in.StockBalance,
		StockValue:   in.StockValue,
		SellerCode:   in.SellerCode,
		Image:        in.Image,
		FlagActivate: flagActivate,
		AdminNote:    in.AdminNote,
	}
	if err := r.db.QueryRowContext(ctx, query,
		in.Code, in.Category, in.Name, in.Type, in.Subtype, in.Unit,
		in.CostPrice, in.SellPrice, in.StockBalance, in.StockValue,
		in.SellerCode, in.Image, flagActivate, in.AdminNote,
	).Scan(&product.ID); err != nil {
		return Product{}, translateConflict(err, "create product")
	}
	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id int64, in ProductInput) (Product, error) {
	flagActivate := true
	if in.FlagActivate != nil {
		flagActivate = *in.FlagActivate
	}

	query := `
UPDATE "Product"
SET "code" = $2, "category" = $3, "name" = $4, "type" = $5, "subtype" = $6, "unit" = $7, "costPrice" = $8, "sellPrice" = $9, "stockBalance" = $10, "stockValue" = $11, "sellerCode" = $12, "image" = $13, "flagActivate" = $14, "adminNote" = $15
WHERE "id" = $1`

	result, err := r.db.ExecContext(ctx, query,
		id, in.Code, in.Category, in.Name, in.Type, in.Subtype, in.Unit,
		in.CostPrice, in.SellPrice, in.StockBalance, in.StockValue,
		in.SellerCode, in.Image, flagActivate, in.AdminNote,
	)
	if err != nil {
		return Product{}, translateConflict(err, "update product")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Product{}, fmt.Errorf("update product rows affected: %w", err)
	}
	if rows == 0 {
		return Product{}, ErrNotFound
	}

	return Product{
		ID:           id,
		Code:         in.Code,
		Category:     in.Category,
		Name:         in.Name,
		Type:         in.Type,
		Subtype:      in.Subtype,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellPrice:    in.SellPrice,
		StockBalance: in.StockBalance,
		StockValue:   in.StockValue,
		SellerCode:   in.SellerCode,
		Image:        in.Image,
		FlagActivate: flagActivate,
		AdminNote:    in.AdminNote,
	}, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "Product" WHERE "id" = $1`, id, "delete product")
}

func (r *Repository) ListProductFilterValues(ctx context.Context) (ProductFilterValues, error) {
	var values ProductFilterValues
	var err error
	if values.Categories, err = r.distinctValues(ctx, `
SELECT DISTINCT "category" FROM "Product" WHERE "category" <> '' ORDER BY "category" ASC`); err != nil {
		return ProductFilterValues{}, fmt.Errorf("list product categories: %w", err)
	}
	if values.Types, err = r.distinctValues(ctx, `
SELECT DISTINCT "type" FROM "Product" WHERE "type" <> '' ORDER BY "type" ASC`); err != nil {
		return ProductFilterValues{}, fmt.Errorf("list product types: %w", err)
	}
	if values.Subtypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "subtype" FROM "Product" WHERE "subtype" <> '' ORDER BY "subtype" ASC`); err != nil {
		return ProductFilterValues{}, fmt.Errorf("list product subtypes: %w", err)
	}
	return values, nil
}

func (r *Repository) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
