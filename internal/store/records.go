package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const surveySelect = `
SELECT "id", "productCode", "category", "type", "subtype", "productName", "requestedAmount", "unit", "pricePerUnit", "requestingDept", "approvedQuota"
FROM "Survey"`

func scanSurvey(row interface{ Scan(dest ...any) error }) (Survey, error) {
	var s Survey
	err := row.Scan(
		&s.ID,
		&s.ProductCode,
		&s.Category,
		&s.Type,
		&s.Subtype,
		&s.ProductName,
		&s.RequestedAmount,
		&s.Unit,
		&s.PricePerUnit,
		&s.RequestingDept,
		&s.ApprovedQuota,
	)
	return s, err
}

var surveyOrderColumns = map[string]string{
	"id":              `"id"`,
	"productCode":     `"productCode"`,
	"category":        `"category"`,
	"type":            `"type"`,
	"subtype":         `"subtype"`,
	"productName":     `"productName"`,
	"requestedAmount": `"requestedAmount"`,
	"unit":            `"unit"`,
	"pricePerUnit":    `"pricePerUnit"`,
	"requestingDept":  `"requestingDept"`,
	"approvedQuota":   `"approvedQuota"`,
}

// ListSurveys returns every matching survey row; the survey list is not
// paginated. Without an explicit order the newest rows come first.
func (r *Repository) ListSurveys(ctx context.Context, f SurveyFilter) ([]Survey, int, error) {
	var clauses filterClauses
	clauses.add(`"productName"`, f.ProductName)
	clauses.addEqual(`"category"`, f.Category)
	clauses.addEqual(`"type"`, f.Type)
	clauses.addEqual(`"requestingDept"`, f.RequestingDept)
	where := clauses.where()

	var total int
	if err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM "Survey"`+where, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count surveys: %w", err)
	}

	order := orderClause(surveyOrderColumns, f.OrderBy, f.SortDesc)
	if f.OrderBy == "" {
		order = "\nORDER BY \"id\" DESC"
	}

	rows, err := r.db.QueryContext(ctx, surveySelect+where+order, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list surveys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	surveys := make([]Survey, 0)
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan survey row: %w", err)
		}
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate survey rows: %w", err)
	}
	return surveys, total, nil
}

func (r *Repository) ListSurveyFilterValues(ctx context.Context) (SurveyFilterValues, error) {
	var values SurveyFilterValues
	var err error
	if values.Categories, err = r.distinctValues(ctx, `
SELECT DISTINCT "category" FROM "Survey" WHERE "category" <> '' ORDER BY "category" ASC`); err != nil {
		return SurveyFilterValues{}, fmt.Errorf("list survey categories: %w", err)
	}
	if values.Types, err = r.distinctValues(ctx, `
SELECT DISTINCT "type" FROM "Survey" WHERE "type" <> '' ORDER BY "type" ASC`); err != nil {
		return SurveyFilterValues{}, fmt.Errorf("list survey types: %w", err)
	}
	if values.Subtypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "subtype" FROM "Survey" WHERE "subtype" <> '' ORDER BY "subtype" ASC`); err != nil {
		return SurveyFilterValues{}, fmt.Errorf("list survey subtypes: %w", err)
	}
	if values.Departments, err = r.distinctValues(ctx, `
SELECT DISTINCT "requestingDept" FROM "Survey" WHERE "requestingDept" <> '' ORDER BY "requestingDept" ASC`); err != nil {
		return SurveyFilterValues{}, fmt.Errorf("list survey departments: %w", err)
	}
	return values, nil
}

func (r *Repository) GetSurvey(ctx context.Context, id int64) (Survey, error) {
	survey, err := scanSurvey(r.db.QueryRowContext(ctx, surveySelect+`
WHERE "id" = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Survey{}, ErrNotFound
		}
		return Survey{}, fmt.Errorf("get survey: %w", err)
	}
	return survey, nil
}

func (r *Repository) CreateSurvey(ctx context.Context, in SurveyInput) (Survey, error) {
	survey := Survey{
		ProductCode:     in.ProductCode,
		Category:        in.Category,
		Type:            in.Type,
		Subtype:         in.Subtype,
		ProductName:     in.ProductName,
		RequestedAmount: in.RequestedAmount,
		Unit:            in.Unit,
		PricePerUnit:    in.PricePerUnit,
		RequestingDept:  in.RequestingDept,
		ApprovedQuota:   in.ApprovedQuota,
	}
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "Survey" ("productCode", "category", "type", "subtype", "productName", "requestedAmount", "unit", "pricePerUnit", "requestingDept", "approvedQuota")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING "id"`,
		in.ProductCode, in.Category, in.Type, in.Subtype, in.ProductName,
		in.RequestedAmount, in.Unit, in.PricePerUnit, in.RequestingDept, in.ApprovedQuota,
	).Scan(&survey.ID); err != nil {
		return Survey{}, fmt.Errorf("create survey: %w", err)
	}
	return survey, nil
}

func (r *Repository) UpdateSurvey(ctx context.Context, id int64, in SurveyInput) (Survey, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "Survey"
SET "productCode" = $2, "category" = $3, "type" = $4, "subtype" = $5, "productName" = $6, "requestedAmount" = $7, "unit" = $8, "pricePerUnit" = $9, "requestingDept" = $10, "approvedQuota" = $11
WHERE "id" = $1`,
		id, in.ProductCode, in.Category, in.Type, in.Subtype, in.ProductName,
		in.RequestedAmount, in.Unit, in.PricePerUnit, in.RequestingDept, in.ApprovedQuota)
	if err != nil {
		return Survey{}, fmt.Errorf("update survey: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Survey{}, fmt.Errorf("update survey rows affected: %w", err)
	}
	if rows == 0 {
		return Survey{}, ErrNotFound
	}
	return Survey{
		ID:              id,
		ProductCode:     in.ProductCode,
		Category:        in.Category,
		Type:            in.Type,
		Subtype:         in.Subtype,
		ProductName:     in.ProductName,
		RequestedAmount: in.RequestedAmount,
		Unit:            in.Unit,
		PricePerUnit:    in.PricePerUnit,
		RequestingDept:  in.RequestingDept,
		ApprovedQuota:   in.ApprovedQuota,
	}, nil
}

func (r *Repository) DeleteSurvey(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "Survey" WHERE "id" = $1`, id, "delete survey")
}

var purchasePlanOrderColumns = map[string]string{
	"id":                   `"id"`,
	"productCode":          `"productCode"`,
	"productName":          `"productName"`,
	"category":             `"category"`,
	"productType":          `"productType"`,
	"productSubtype":       `"productSubtype"`,
	"budgetYear":           `"budgetYear"`,
	"purchasingDepartment": `"purchasingDepartment"`,
}

const purchasePlanSelect = `
SELECT "id", "productCode", "category", "productName", "productType", "productSubtype", "unit", "pricePerUnit", "budgetYear", "planId", "inPlan", "carriedForwardQuantity", "carriedForwardValue", "requiredQuantityForYear", "totalRequiredValue", "additionalPurchaseQty", "additionalPurchaseValue", "purchasingDepartment"
FROM "PurchasePlan"`

func scanPurchasePlan(row interface{ Scan(dest ...any) error }) (PurchasePlan, error) {
	var p PurchasePlan
	err := row.Scan(
		&p.ID,
		&p.ProductCode,
		&p.Category,
		&p.ProductName,
		&p.ProductType,
		&p.ProductSubtype,
		&p.Unit,
		&p.PricePerUnit,
		&p.BudgetYear,
		&p.PlanID,
		&p.InPlan,
		&p.CarriedForwardQuantity,
		&p.CarriedForwardValue,
		&p.RequiredQuantityForYear,
		&p.TotalRequiredValue,
		&p.AdditionalPurchaseQty,
		&p.AdditionalPurchaseValue,
		&p.PurchasingDepartment,
	)
	return p, err
}

func (r *Repository) ListPurchasePlans(ctx context.Context, f PurchasePlanFilter) ([]PurchasePlan, int, error) {
	var clauses filterClauses
	clauses.add(`"productName"`, f.ProductName)
	clauses.add(`"category"`, f.Category)
	clauses.add(`"productType"`, f.ProductType)
	clauses.add(`"productSubtype"`, f.ProductSubtype)
	clauses.add(`"purchasingDepartment"`, f.PurchasingDepartment)
	clauses.add(`"budgetYear"`, f.BudgetYear)
	where := clauses.where()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "PurchasePlan"`+where, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase plans: %w", err)
	}

	limit, _, _ := pageClause(f.Page, f.PageSize)
	rows, err := r.db.QueryContext(ctx, purchasePlanSelect+where+orderClause(purchasePlanOrderColumns, f.OrderBy, f.SortDesc)+limit, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	plans := make([]PurchasePlan, 0)
	for rows.Next() {
		plan, err := scanPurchasePlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase plan row: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate purchase plan rows: %w", err)
	}
	return plans, total, nil
}

func (r *Repository) GetPurchasePlan(ctx context.Context, id int64) (PurchasePlan, error) {
	plan, err := scanPurchasePlan(r.db.QueryRowContext(ctx, purchasePlanSelect+`
WHERE "id" = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PurchasePlan{}, ErrNotFound
		}
		return PurchasePlan{}, fmt.Errorf("get purchase plan: %w", err)
	}
	return plan, nil
}

func (r *Repository) CreatePurchasePlan(ctx context.Context, in PurchasePlanInput) (PurchasePlan, error) {
	plan := purchasePlanFromInput(0, in)
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "PurchasePlan" ("productCode", "category", "productName", "productType", "productSubtype", "unit", "pricePerUnit", "budgetYear", "planId", "inPlan", "carriedForwardQuantity", "carriedForwardValue", "requiredQuantityForYear", "totalRequiredValue", "additionalPurchaseQty", "additionalPurchaseValue", "purchasingDepartment")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING "id"`,
		in.ProductCode, in.Category, in.ProductName, in.ProductType, in.ProductSubtype,
		in.Unit, in.PricePerUnit, in.BudgetYear, in.PlanID, in.InPlan,
		in.CarriedForwardQuantity, in.CarriedForwardValue, in.RequiredQuantityForYear,
		in.TotalRequiredValue, in.AdditionalPurchaseQty, in.AdditionalPurchaseValue,
		in.PurchasingDepartment,
	).Scan(&plan.ID); err != nil {
		return PurchasePlan{}, fmt.Errorf("create purchase plan: %w", err)
	}
	return plan, nil
}

func (r *Repository) UpdatePurchasePlan(ctx context.Context, id int64, in PurchasePlanInput) (PurchasePlan, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "PurchasePlan"
SET "productCode" = $2, "category" = $3, "productName" = $4, "productType" = $5, "productSubtype" = $6, "unit" = $7, "pricePerUnit" = $8, "budgetYear" = $9, "planId" = $10, "inPlan" = $11, "carriedForwardQuantity" = $12, "carriedForwardValue" = $13, "requiredQuantityForYear" = $14, "totalRequiredValue" = $15, "additionalPurchaseQty" = $16, "additionalPurchaseValue" = $17, "purchasingDepartment" = $18
WHERE "id" = $1`,
		id, in.ProductCode, in.Category, in.ProductName, in.ProductType, in.ProductSubtype,
		in.Unit, in.PricePerUnit, in.BudgetYear, in.PlanID, in.InPlan,
		in.CarriedForwardQuantity, in.CarriedForwardValue, in.RequiredQuantityForYear,
		in.TotalRequiredValue, in.AdditionalPurchaseQty, in.AdditionalPurchaseValue,
		in.PurchasingDepartment)
	if err != nil {
		return PurchasePlan{}, fmt.Errorf("update purchase plan: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return PurchasePlan{}, fmt.Errorf("update purchase plan rows affected: %w", err)
	}
	if rows == 0 {
		return PurchasePlan{}, ErrNotFound
	}
	return purchasePlanFromInput(id, in), nil
}

func (r *Repository) DeletePurchasePlan(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "PurchasePlan" WHERE "id" = $1`, id, "delete purchase plan")
}

func purchasePlanFromInput(id int64, in PurchasePlanInput) PurchasePlan {
	return PurchasePlan{
		ID:                      id,
		ProductCode:             in.ProductCode,
		Category:                in.Category,
		ProductName:             in.ProductName,
		ProductType:             in.ProductType,
		ProductSubtype:          in.ProductSubtype,
		Unit:                    in.Unit,
		PricePerUnit:            in.PricePerUnit,
		BudgetYear:              in.BudgetYear,
		PlanID:                  in.PlanID,
		InPlan:                  in.InPlan,
		CarriedForwardQuantity:  in.CarriedForwardQuantity,
		CarriedForwardValue:     in.CarriedForwardValue,
		RequiredQuantityForYear: in.RequiredQuantityForYear,
		TotalRequiredValue:      in.TotalRequiredValue,
		AdditionalPurchaseQty:   in.AdditionalPurchaseQty,
		AdditionalPurchaseValue: in.AdditionalPurchaseValue,
		PurchasingDepartment:    in.PurchasingDepartment,
	}
}

var purchaseApprovalOrderColumns = map[string]string{
	"id":             `"id"`,
	"department":     `"department"`,
	"recordNumber":   `"recordNumber"`,
	"requestDate":    `"requestDate"`,
	"productName":    `"productName"`,
	"productCode":    `"productCode"`,
	"category":       `"category"`,
	"productType":    `"productType"`,
	"productSubtype": `"productSubtype"`,
	"requester":      `"requester"`,
	"approver":       `"approver"`,
}

const purchaseApprovalSelect = `
SELECT "id", "approvalId", "department", "recordNumber", "requestDate", "productName", "productCode", "category", "productType", "productSubtype", "requestedQuantity", "unit", "pricePerUnit", "totalValue", "overPlanCase", "requester", "approver"
FROM "PurchaseApproval"`

func scanPurchaseApproval(row interface{ Scan(dest ...any) error }) (PurchaseApproval, error) {
	var a PurchaseApproval
	err := row.Scan(
		&a.ID,
		&a.ApprovalID,
		&a.Department,
		&a.RecordNumber,
		&a.RequestDate,
		&a.ProductName,
		&a.ProductCode,
		&a.Category,
		&a.ProductType,
		&a.ProductSubtype,
		&a.RequestedQuantity,
		&a.Unit,
		&a.PricePerUnit,
		&a.TotalValue,
		&a.OverPlanCase,
		&a.Requester,
		&a.Approver,
	)
	return a, err
}

func (r *Repository) ListPurchaseApprovals(ctx context.Context, f PurchaseApprovalFilter) ([]PurchaseApproval, int, error) {
	var clauses filterClauses
	clauses.add(`"productName"`, f.ProductName)
	clauses.add(`"category"`, f.Category)
	clauses.add(`"productType"`, f.ProductType)
	clauses.add(`"productSubtype"`, f.ProductSubtype)
	clauses.add(`"department"`, f.Department)
	where := clauses.where()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "PurchaseApproval"`+where, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase approvals: %w", err)
	}

	limit, _, _ := pageClause(f.Page, f.PageSize)
	rows, err := r.db.QueryContext(ctx, purchaseApprovalSelect+where+orderClause(purchaseApprovalOrderColumns, f.OrderBy, f.SortDesc)+limit, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase approvals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	approvals := make([]PurchaseApproval, 0)
	for rows.Next() {
		approval, err := scanPurchaseApproval(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase approval row: %w", err)
		}
		approvals = append(approvals, approval)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate purchase approval rows: %w", err)
	}
	return approvals, total, nil
}

func (r *Repository) GetPurchaseApproval(ctx context.Context, id int64) (PurchaseApproval, error) {
	approval, err := scanPurchaseApproval(r.db.QueryRowContext(ctx, purchaseApprovalSelect+`
WHERE "id" = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PurchaseApproval{}, ErrNotFound
		}
		return PurchaseApproval{}, fmt.Errorf("get purchase approval: %w", err)
	}
	return approval, nil
}

func (r *Repository) CreatePurchaseApproval(ctx context.Context, in PurchaseApprovalInput) (PurchaseApproval, error) {
	approval := purchaseApprovalFromInput(0, in)
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "PurchaseApproval" ("approvalId", "department", "recordNumber", "requestDate", "productName", "productCode", "category", "productType", "productSubtype", "requestedQuantity", "unit", "pricePerUnit", "totalValue", "overPlanCase", "requester", "approver")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING "id"`,
		in.ApprovalID, in.Department, in.RecordNumber, in.RequestDate, in.ProductName,
		in.ProductCode, in.Category, in.ProductType, in.ProductSubtype, in.RequestedQuantity,
		in.Unit, in.PricePerUnit, in.TotalValue, in.OverPlanCase, in.Requester, in.Approver,
	).Scan(&approval.ID); err != nil {
		return PurchaseApproval{}, fmt.Errorf("create purchase approval: %w", err)
	}
	return approval, nil
}

func (r *Repository) UpdatePurchaseApproval(ctx context.Context, id int64, in PurchaseApprovalInput) (PurchaseApproval, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "PurchaseApproval"
SET "approvalId" = $2, "department" = $3, "recordNumber" = $4, "requestDate" = $5, "productName" = $6, "productCode" = $7, "category" = $8, "productType" = $9, "productSubtype" = $10, "requestedQuantity" = $11, "unit" = $12, "pricePerUnit" = $13, "totalValue" = $14, "overPlanCase" = $15, "requester" = $16, "approver" = $17
WHERE "id" = $1`,
		id, in.ApprovalID, in.Department, in.RecordNumber, in.RequestDate, in.ProductName,
		in.ProductCode, in.Category, in.ProductType, in.ProductSubtype, in.RequestedQuantity,
		in.Unit, in.PricePerUnit, in.TotalValue, in.OverPlanCase, in.Requester, in.Approver)
	if err != nil {
		return PurchaseApproval{}, fmt.Errorf("update purchase approval: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return PurchaseApproval{}, fmt.Errorf("update purchase approval rows affected: %w", err)
	}
	if rows == 0 {
		return PurchaseApproval{}, ErrNotFound
	}
	return purchaseApprovalFromInput(id, in), nil
}

func (r *Repository) DeletePurchaseApproval(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "PurchaseApproval" WHERE "id" = $1`, id, "delete purchase approval")
}

func (r *Repository) ListPurchaseApprovalFilterValues(ctx context.Context) (PurchaseApprovalFilterValues, error) {
	var values PurchaseApprovalFilterValues
	var err error
	if values.Departments, err = r.distinctValues(ctx, `
SELECT DISTINCT "department" FROM "PurchaseApproval" WHERE "department" <> '' ORDER BY "department" ASC`); err != nil {
		return PurchaseApprovalFilterValues{}, fmt.Errorf("list approval departments: %w", err)
	}
	if values.Categories, err = r.distinctValues(ctx, `
SELECT DISTINCT "category" FROM "PurchaseApproval" WHERE "category" <> '' ORDER BY "category" ASC`); err != nil {
		return PurchaseApprovalFilterValues{}, fmt.Errorf("list approval categories: %w", err)
	}
	if values.ProductTypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "productType" FROM "PurchaseApproval" WHERE "productType" <> '' ORDER BY "productType" ASC`); err != nil {
		return PurchaseApprovalFilterValues{}, fmt.Errorf("list approval product types: %w", err)
	}
	if values.ProductSubtypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "productSubtype" FROM "PurchaseApproval" WHERE "productSubtype" <> '' ORDER BY "productSubtype" ASC`); err != nil {
		return PurchaseApprovalFilterValues{}, fmt.Errorf("list approval product subtypes: %w", err)
	}
	if values.Requesters, err = r.distinctValues(ctx, `
SELECT DISTINCT "requester" FROM "PurchaseApproval" WHERE "requester" <> '' ORDER BY "requester" ASC`); err != nil {
		return PurchaseApprovalFilterValues{}, fmt.Errorf("list approval requesters: %w", err)
	}
	if values.Approvers, err = r.distinctValues(ctx, `
SELECT DISTINCT "approver" FROM "PurchaseApproval" WHERE "approver" <> '' ORDER BY "approver" ASC`); err != nil {
		return PurchaseApprovalFilterValues{}, fmt.Errorf("list approval approvers: %w", err)
	}
	return values, nil
}

func purchaseApprovalFromInput(id int64, in PurchaseApprovalInput) PurchaseApproval {
	return PurchaseApproval{
		ID:                id,
		ApprovalID:        in.ApprovalID,
		Department:        in.Department,
		RecordNumber:      in.RecordNumber,
		RequestDate:       in.RequestDate,
		ProductName:       in.ProductName,
		ProductCode:       in.ProductCode,
		Category:          in.Category,
		ProductType:       in.ProductType,
		ProductSubtype:    in.ProductSubtype,
		RequestedQuantity: in.RequestedQuantity,
		Unit:              in.Unit,
		PricePerUnit:      in.PricePerUnit,
		TotalValue:        in.TotalValue,
		OverPlanCase:      in.OverPlanCase,
		Requester:         in.Requester,
		Approver:          in.Approver,
	}
}

var warehouseOrderColumns = map[string]string{
	"id":                   `"id"`,
	"transactionDate":      `"transactionDate"`,
	"productCode":          `"productCode"`,
	"productName":          `"productName"`,
	"transactionQuantity":  `"transactionQuantity"`,
	"remainingQuantity":    `"remainingQuantity"`,
	"category":             `"category"`,
	"productType":          `"productType"`,
	"productSubtype":       `"productSubtype"`,
	"requestingDepartment": `"requestingDepartment"`,
}

const warehouseSelect = `
SELECT "id", "stockId", "transactionType", "transactionDate", "category", "productType", "productSubtype", "productCode", "productName", "productImage", "unit", "productLot", "productPrice", "receivedFromCompany", "receiptBillNumber", "requestingDepartment", "requisitionNumber", "quotaAmount", "carriedForwardQty", "carriedForwardValue", "transactionPrice", "transactionQuantity", "transactionValue", "remainingQuantity", "remainingValue", "inventoryStatus"
FROM "Warehouse"`

func scanWarehouseEntry(row interface{ Scan(dest ...any) error }) (WarehouseEntry, error) {
	var e WarehouseEntry
	err := row.Scan(
		&e.ID,
		&e.StockID,
		&e.TransactionType,
		&e.TransactionDate,
		&e.Category,
		&e.ProductType,
		&e.ProductSubtype,
		&e.ProductCode,
		&e.ProductName,
		&e.ProductImage,
		&e.Unit,
		&e.ProductLot,
		&e.ProductPrice,
		&e.ReceivedFromCompany,
		&e.ReceiptBillNumber,
		&e.RequestingDepartment,
		&e.RequisitionNumber,
		&e.QuotaAmount,
		&e.CarriedForwardQty,
		&e.CarriedForwardValue,
		&e.TransactionPrice,
		&e.TransactionQuantity,
		&e.TransactionValue,
		&e.RemainingQuantity,
		&e.RemainingValue,
		&e.InventoryStatus,
	)
	return e, err
}

func (r *Repository) ListWarehouseEntries(ctx context.Context, f WarehouseFilter) ([]WarehouseEntry, int, error) {
	var clauses filterClauses
	clauses.add(`"productName"`, f.ProductName)
	clauses.add(`"category"`, f.Category)
	clauses.add(`"productType"`, f.ProductType)
	clauses.add(`"productSubtype"`, f.ProductSubtype)
	clauses.add(`"requestingDepartment"`, f.RequestingDepartment)
	where := clauses.where()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Warehouse"`+where, clauses.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warehouse entries: %w", err)
	}

	limit, _, _ := pageClause(f.Page, f.PageSize)
	rows, err := r.db.QueryContext(ctx, warehouseSelect+where+orderClause(warehouseOrderColumns, f.OrderBy, f.SortDesc)+limit, clauses.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouse entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]WarehouseEntry, 0)
	for rows.Next() {
		entry, err := scanWarehouseEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan warehouse row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate warehouse rows: %w", err)
	}
	return entries, total, nil
}

func (r *Repository) GetWarehouseEntry(ctx context.Context, id int64) (WarehouseEntry, error) {
	entry, err := scanWarehouseEntry(r.db.QueryRowContext(ctx, warehouseSelect+`
WHERE "id" = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WarehouseEntry{}, ErrNotFound
		}
		return WarehouseEntry{}, fmt.Errorf("get warehouse entry: %w", err)
	}
	return entry, nil
}

func (r *Repository) CreateWarehouseEntry(ctx context.Context, in WarehouseEntryInput) (WarehouseEntry, error) {
	entry := warehouseEntryFromInput(0, in)
	if err := r.db.QueryRowContext(ctx, `
INSERT INTO "Warehouse" ("stockId", "transactionType", "transactionDate", "category", "productType", "productSubtype", "productCode", "productName", "productImage", "unit", "productLot", "productPrice", "receivedFromCompany", "receiptBillNumber", "requestingDepartment", "requisitionNumber", "quotaAmount", "carriedForwardQty", "carriedForwardValue", "transactionPrice", "transactionQuantity", "transactionValue", "remainingQuantity", "remainingValue", "inventoryStatus")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
RETURNING "id"`,
		in.StockID, in.TransactionType, in.TransactionDate, in.Category, in.ProductType,
		in.ProductSubtype, in.ProductCode, in.ProductName, in.ProductImage, in.Unit,
		in.ProductLot, in.ProductPrice, in.ReceivedFromCompany, in.ReceiptBillNumber,
		in.RequestingDepartment, in.RequisitionNumber, in.QuotaAmount, in.CarriedForwardQty,
		in.CarriedForwardValue, in.TransactionPrice, in.TransactionQuantity, in.TransactionValue,
		in.RemainingQuantity, in.RemainingValue, in.InventoryStatus,
	).Scan(&entry.ID); err != nil {
		return WarehouseEntry{}, fmt.Errorf("create warehouse entry: %w", err)
	}
	return entry, nil
}

func (r *Repository) UpdateWarehouseEntry(ctx context.Context, id int64, in WarehouseEntryInput) (WarehouseEntry, error) {
	result, err := r.db.ExecContext(ctx, `
UPDATE "Warehouse"
SET "stockId" = $2, "transactionType" = $3, "transactionDate" = $4, "category" = $5, "productType" = $6, "productSubtype" = $7, "productCode" = $8, "productName" = $9, "productImage" = $10, "unit" = $11, "productLot" = $12, "productPrice" = $13, "receivedFromCompany" = $14, "receiptBillNumber" = $15, "requestingDepartment" = $16, "requisitionNumber" = $17, "quotaAmount" = $18, "carriedForwardQty" = $19, "carriedForwardValue" = $20, "transactionPrice" = $21, "transactionQuantity" = $22, "transactionValue" = $23, "remainingQuantity" = $24, "remainingValue" = $25, "inventoryStatus" = $26
WHERE "id" = $1`,
		id, in.StockID, in.TransactionType, in.TransactionDate, in.Category, in.ProductType,
		in.ProductSubtype, in.ProductCode, in.ProductName, in.ProductImage, in.Unit,
		in.ProductLot, in.ProductPrice, in.ReceivedFromCompany, in.ReceiptBillNumber,
		in.RequestingDepartment, in.RequisitionNumber, in.QuotaAmount, in.CarriedForwardQty,
		in.CarriedForwardValue, in.TransactionPrice, in.TransactionQuantity, in.TransactionValue,
		in.RemainingQuantity, in.RemainingValue, in.InventoryStatus)
	if err != nil {
		return WarehouseEntry{}, fmt.Errorf("update warehouse entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return WarehouseEntry{}, fmt.Errorf("update warehouse entry rows affected: %w", err)
	}
	if rows == 0 {
		return WarehouseEntry{}, ErrNotFound
	}
	return warehouseEntryFromInput(id, in), nil
}

func (r *Repository) DeleteWarehouseEntry(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM "Warehouse" WHERE "id" = $1`, id, "delete warehouse entry")
}

func warehouseEntryFromInput(id int64, in WarehouseEntryInput) WarehouseEntry {
	return WarehouseEntry{
		ID:                   id,
		StockID:              in.StockID,
		TransactionType:      in.TransactionType,
		TransactionDate:      in.TransactionDate,
		Category:             in.Category,
		ProductType:          in.ProductType,
		ProductSubtype:       in.ProductSubtype,
		ProductCode:          in.ProductCode,
		ProductName:          in.ProductName,
		ProductImage:         in.ProductImage,
		Unit:                 in.Unit,
		ProductLot:           in.ProductLot,
		ProductPrice:         in.ProductPrice,
		ReceivedFromCompany:  in.ReceivedFromCompany,
		ReceiptBillNumber:    in.ReceiptBillNumber,
		RequestingDepartment: in.RequestingDepartment,
		RequisitionNumber:    in.RequisitionNumber,
		QuotaAmount:          in.QuotaAmount,
		CarriedForwardQty:    in.CarriedForwardQty,
		CarriedForwardValue:  in.CarriedForwardValue,
		TransactionPrice:     in.TransactionPrice,
		TransactionQuantity:  in.TransactionQuantity,
		TransactionValue:     in.TransactionValue,
		RemainingQuantity:    in.RemainingQuantity,
		RemainingValue:       in.RemainingValue,
		InventoryStatus:      in.InventoryStatus,
	}
}

func (r *Repository) ListWarehouseFilterValues(ctx context.Context) (WarehouseFilterValues, error) {
	var values WarehouseFilterValues
	var err error
	if values.TransactionTypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "transactionType" FROM "Warehouse" WHERE "transactionType" <> '' ORDER BY "transactionType" ASC`); err != nil {
		return WarehouseFilterValues{}, fmt.Errorf("list warehouse transaction types: %w", err)
	}
	if values.Categories, err = r.distinctValues(ctx, `
SELECT DISTINCT "category" FROM "Warehouse" WHERE "category" <> '' ORDER BY "category" ASC`); err != nil {
		return WarehouseFilterValues{}, fmt.Errorf("list warehouse categories: %w", err)
	}
	if values.ProductTypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "productType" FROM "Warehouse" WHERE "productType" <> '' ORDER BY "productType" ASC`); err != nil {
		return WarehouseFilterValues{}, fmt.Errorf("list warehouse product types: %w", err)
	}
	if values.ProductSubtypes, err = r.distinctValues(ctx, `
SELECT DISTINCT "productSubtype" FROM "Warehouse" WHERE "productSubtype" <> '' ORDER BY "productSubtype" ASC`); err != nil {
		return WarehouseFilterValues{}, fmt.Errorf("list warehouse product subtypes: %w", err)
	}
	if values.Companies, err = r.distinctValues(ctx, `
SELECT DISTINCT "receivedFromCompany" FROM "Warehouse" WHERE "receivedFromCompany" <> '' ORDER BY "receivedFromCompany" ASC`); err != nil {
		return WarehouseFilterValues{}, fmt.Errorf("list warehouse companies: %w", err)
	}
	if values.Departments, err = r.distinctValues(ctx, `
SELECT DISTINCT "requestingDepartment" FROM "Warehouse" WHERE "requestingDepartment" <> '' ORDER BY "requestingDepartment" ASC`); err != nil {
		return WarehouseFilterValues{}, fmt.Errorf("list warehouse departments: %w", err)
	}
	return values, nil
}
