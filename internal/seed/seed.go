// Package seed imports master data from CSV exports into the admin database.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/medstock/medstock/internal/store"
)

// Store is the subset of repository operations the importers need.
type Store interface {
	CreateProduct(ctx context.Context, in store.ProductInput) (store.Product, error)
	CreateCategory(ctx context.Context, in store.CategoryInput) (store.Category, error)
	CreateDepartment(ctx context.Context, name string) (store.Department, error)
	CreateSeller(ctx context.Context, in store.SellerInput) (store.Seller, error)
}

// Result summarizes one import run. Skipped counts rows rejected as
// duplicates plus rows without enough columns.
type Result struct {
	Imported int
	Skipped  int
}

type Importer struct {
	Store  Store
	Logger *slog.Logger
}

// ImportProducts reads a product CSV export. Expected columns: code,
// category, name, type, subtype, unit, costPrice, sellPrice, stockBalance,
// stockValue, sellerCode, image, flagActivate, adminNote.
func (imp *Importer) ImportProducts(ctx context.Context, r io.Reader) (Result, error) {
	return imp.importRows(ctx, r, 14, "product", func(ctx context.Context, cols []string) error {
		costPrice, err := optFloat(cols[6])
		if err != nil {
			return fmt.Errorf("invalid costPrice %q: %w", cols[6], err)
		}
		sellPrice, err := optFloat(cols[7])
		if err != nil {
			return fmt.Errorf("invalid sellPrice %q: %w", cols[7], err)
		}
		stockBalance, err := optInt(cols[8])
		if err != nil {
			return fmt.Errorf("invalid stockBalance %q: %w", cols[8], err)
		}
		stockValue, err := optFloat(cols[9])
		if err != nil {
			return fmt.Errorf("invalid stockValue %q: %w", cols[9], err)
		}
		active := strings.EqualFold(strings.TrimSpace(cols[12]), "TRUE")

		_, err = imp.Store.CreateProduct(ctx, store.ProductInput{
			Code:         strings.TrimSpace(cols[0]),
			Category:     strings.TrimSpace(cols[1]),
			Name:         strings.TrimSpace(cols[2]),
			Type:         strings.TrimSpace(cols[3]),
			Subtype:      strings.TrimSpace(cols[4]),
			Unit:         strings.TrimSpace(cols[5]),
			CostPrice:    costPrice,
			SellPrice:    sellPrice,
			StockBalance: stockBalance,
			StockValue:   stockValue,
			SellerCode:   optString(cols[10]),
			Image:        optString(cols[11]),
			FlagActivate: &active,
			AdminNote:    optString(cols[13]),
		})
		return err
	})
}

// ImportCategories reads a category CSV export with columns category, type,
// subtype.
func (imp *Importer) ImportCategories(ctx context.Context, r io.Reader) (Result, error) {
	return imp.importRows(ctx, r, 3, "category", func(ctx context.Context, cols []string) error {
		_, err := imp.Store.CreateCategory(ctx, store.CategoryInput{
			Category: strings.TrimSpace(cols[0]),
			Type:     strings.TrimSpace(cols[1]),
			Subtype:  optString(cols[2]),
		})
		return err
	})
}

// ImportDepartments reads a department CSV export. The department name is in
// the second column, matching the original export layout.
func (imp *Importer) ImportDepartments(ctx context.Context, r io.Reader) (Result, error) {
	return imp.importRows(ctx, r, 2, "department", func(ctx context.Context, cols []string) error {
		name := strings.TrimSpace(cols[1])
		if name == "" {
			return errSkipRow
		}
		_, err := imp.Store.CreateDepartment(ctx, name)
		return err
	})
}

// ImportSellers reads a seller CSV export with columns code, prefix, name,
// business, address, phone, fax, mobile.
func (imp *Importer) ImportSellers(ctx context.Context, r io.Reader) (Result, error) {
	return imp.importRows(ctx, r, 8, "seller", func(ctx context.Context, cols []string) error {
		_, err := imp.Store.CreateSeller(ctx, store.SellerInput{
			Code:     strings.TrimSpace(cols[0]),
			Prefix:   optString(cols[1]),
			Name:     strings.TrimSpace(cols[2]),
			Business: optString(cols[3]),
			Address:  optString(cols[4]),
			Phone:    optString(cols[5]),
			Fax:      optString(cols[6]),
			Mobile:   optString(cols[7]),
		})
		return err
	})
}

var errSkipRow = errors.New("seed: skip row")

func (imp *Importer) importRows(ctx context.Context, r io.Reader, minColumns int, entity string, insert func(context.Context, []string) error) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result Result
	line := 0
	for {
		cols, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read %s csv line %d: %w", entity, line+1, err)
		}
		line++
		if line == 1 {
			// Header row.
			continue
		}
		if len(cols) < minColumns {
			result.Skipped++
			continue
		}

		err = insert(ctx, cols)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, store.ErrConflict), errors.Is(err, errSkipRow):
			result.Skipped++
		default:
			return result, fmt.Errorf("import %s csv line %d: %w", entity, line, err)
		}
	}

	imp.Logger.Info("csv import finished",
		slog.String("entity", entity),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

func optString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func optFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func optInt(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
