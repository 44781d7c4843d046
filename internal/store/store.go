// Package store persists the supply-chain records in Postgres and exposes
// typed repositories for the admin API plus a raw query runner for the
// assistant pipeline.
package store

import "errors"

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: duplicate value")
)

type Product struct {
	ID           int64    `json:"id"`
	Code         string   `json:"code"`
	Category     string   `json:"category"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Subtype      string   `json:"subtype"`
	Unit         string   `json:"unit"`
	CostPrice    *float64 `json:"costPrice"`
	SellPrice    *float64 `json:"sellPrice"`
	StockBalance *int64   `json:"stockBalance"`
	StockValue   *float64 `json:"stockValue"`
	SellerCode   *string  `json:"sellerCode"`
	Image        *string  `json:"image"`
	FlagActivate bool     `json:"flagActivate"`
	AdminNote    *string  `json:"adminNote"`
}

type ProductInput struct {
	Code         string   `json:"code"`
	Category     string   `json:"category"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Subtype      string   `json:"subtype"`
	Unit         string   `json:"unit"`
	CostPrice    *float64 `json:"costPrice"`
	SellPrice    *float64 `json:"sellPrice"`
	StockBalance *int64   `json:"stockBalance"`
	StockValue   *float64 `json:"stockValue"`
	SellerCode   *string  `json:"sellerCode"`
	Image        *string  `json:"image"`
	FlagActivate *bool    `json:"flagActivate"`
	AdminNote    *string  `json:"adminNote"`
}

type ProductFilter struct {
	Name     string
	Category string
	Type     string
	Subtype  string
	OrderBy  string
	SortDesc bool
	Page     int
	PageSize int
}

// ProductFilterValues lists the distinct values the UI offers as product
// list filters.
type ProductFilterValues struct {
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
	Subtypes   []string `json:"subtypes"`
}

type Category struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Subtype  *string `json:"subtype"`
}

type CategoryInput struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Subtype  *string `json:"subtype"`
}

// CategoryFilterValues lists the distinct values across the category
// reference table itself.
type CategoryFilterValues struct {
	Categories []string `json:"categories"`
	Types      []string `json:"types"`
	Subtypes   []string `json:"subtypes"`
}

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Seller struct {
	ID       int64   `json:"id"`
	Code     string  `json:"code"`
	Prefix   *string `json:"prefix"`
	Name     string  `json:"name"`
	Business *string `json:"business"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Fax      *string `json:"fax"`
	Mobile   *string `json:"mobile"`
}

type SellerInput struct {
	Code     string  `json:"code"`
	Prefix   *string `json:"prefix"`
	Name     string  `json:"name"`
	Business *string `json:"business"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Fax      *string `json:"fax"`
	Mobile   *string `json:"mobile"`
}

type Survey struct {
	ID              int64    `json:"id"`
	ProductCode     *string  `json:"productCode"`
	Category        *string  `json:"category"`
	Type            *string  `json:"type"`
	Subtype         *string  `json:"subtype"`
	ProductName     *string  `json:"productName"`
	RequestedAmount *int64   `json:"requestedAmount"`
	Unit            *string  `json:"unit"`
	PricePerUnit    float64  `json:"pricePerUnit"`
	RequestingDept  *string  `json:"requestingDept"`
	ApprovedQuota   *int64   `json:"approvedQuota"`
}

type SurveyInput struct {
	ProductCode     *string `json:"productCode"`
	Category        *string `json:"category"`
	Type            *string `json:"type"`
	Subtype         *string `json:"subtype"`
	ProductName     *string `json:"productName"`
	RequestedAmount *int64  `json:"requestedAmount"`
	Unit            *string `json:"unit"`
	PricePerUnit    float64 `json:"pricePerUnit"`
	RequestingDept  *string `json:"requestingDept"`
	ApprovedQuota   *int64  `json:"approvedQuota"`
}

// SurveyFilter narrows the survey list. ProductName matches on contains;
// the other fields match exactly, as the admin UI sends dropdown values.
type SurveyFilter struct {
	ProductName    string
	Category       string
	Type           string
	RequestingDept string
	OrderBy        string
	SortDesc       bool
}

type SurveyFilterValues struct {
	Categories  []string `json:"categories"`
	Types       []string `json:"types"`
	Subtypes    []string `json:"subtypes"`
	Departments []string `json:"departments"`
}

type PurchasePlan struct {
	ID                      int64   `json:"id"`
	ProductCode             *string `json:"productCode"`
	Category                *string `json:"category"`
	ProductName             *string `json:"productName"`
	ProductType             *string `json:"productType"`
	ProductSubtype          *string `json:"productSubtype"`
	Unit                    *string `json:"unit"`
	PricePerUnit            float64 `json:"pricePerUnit"`
	BudgetYear              *string `json:"budgetYear"`
	PlanID                  *int64  `json:"planId"`
	InPlan                  *string `json:"inPlan"`
	CarriedForwardQuantity  *int64  `json:"carriedForwardQuantity"`
	CarriedForwardValue     float64 `json:"carriedForwardValue"`
	RequiredQuantityForYear *int64  `json:"requiredQuantityForYear"`
	TotalRequiredValue      float64 `json:"totalRequiredValue"`
	AdditionalPurchaseQty   *int64  `json:"additionalPurchaseQty"`
	AdditionalPurchaseValue float64 `json:"additionalPurchaseValue"`
	PurchasingDepartment    *string `json:"purchasingDepartment"`
}

type PurchasePlanInput struct {
	ProductCode             *string `json:"productCode"`
	Category                *string `json:"category"`
	ProductName             *string `json:"productName"`
	ProductType             *string `json:"productType"`
	ProductSubtype          *string `json:"productSubtype"`
	Unit                    *string `json:"unit"`
	PricePerUnit            float64 `json:"pricePerUnit"`
	BudgetYear              *string `json:"budgetYear"`
	PlanID                  *int64  `json:"planId"`
	InPlan                  *string `json:"inPlan"`
	CarriedForwardQuantity  *int64  `json:"carriedForwardQuantity"`
	CarriedForwardValue     float64 `json:"carriedForwardValue"`
	RequiredQuantityForYear *int64  `json:"requiredQuantityForYear"`
	TotalRequiredValue      float64 `json:"totalRequiredValue"`
	AdditionalPurchaseQty   *int64  `json:"additionalPurchaseQty"`
	AdditionalPurchaseValue float64 `json:"additionalPurchaseValue"`
	PurchasingDepartment    *string `json:"purchasingDepartment"`
}

type PurchasePlanFilter struct {
	ProductName          string
	Category             string
	ProductType          string
	ProductSubtype       string
	PurchasingDepartment string
	BudgetYear           string
	OrderBy              string
	SortDesc             bool
	Page                 int
	PageSize             int
}

type PurchaseApproval struct {
	ID                int64   `json:"id"`
	ApprovalID        *string `json:"approvalId"`
	Department        *string `json:"department"`
	RecordNumber      *string `json:"recordNumber"`
	RequestDate       *string `json:"requestDate"`
	ProductName       *string `json:"productName"`
	ProductCode       *string `json:"productCode"`
	Category          *string `json:"category"`
	ProductType       *string `json:"productType"`
	ProductSubtype    *string `json:"productSubtype"`
	RequestedQuantity *int64  `json:"requestedQuantity"`
	Unit              *string `json:"unit"`
	PricePerUnit      float64 `json:"pricePerUnit"`
	TotalValue        float64 `json:"totalValue"`
	OverPlanCase      *string `json:"overPlanCase"`
	Requester         *string `json:"requester"`
	Approver          *string `json:"approver"`
}

type PurchaseApprovalInput struct {
	ApprovalID        *string `json:"approvalId"`
	Department        *string `json:"department"`
	RecordNumber      *string `json:"recordNumber"`
	RequestDate       *string `json:"requestDate"`
	ProductName       *string `json:"productName"`
	ProductCode       *string `json:"productCode"`
	Category          *string `json:"category"`
	ProductType       *string `json:"productType"`
	ProductSubtype    *string `json:"productSubtype"`
	RequestedQuantity *int64  `json:"requestedQuantity"`
	Unit              *string `json:"unit"`
	PricePerUnit      float64 `json:"pricePerUnit"`
	TotalValue        float64 `json:"totalValue"`
	OverPlanCase      *string `json:"overPlanCase"`
	Requester         *string `json:"requester"`
	Approver          *string `json:"approver"`
}

type PurchaseApprovalFilter struct {
	ProductName    string
	Category       string
	ProductType    string
	ProductSubtype string
	Department     string
	OrderBy        string
	SortDesc       bool
	Page           int
	PageSize       int
}

type PurchaseApprovalFilterValues struct {
	Departments     []string `json:"departments"`
	Categories      []string `json:"categories"`
	ProductTypes    []string `json:"productTypes"`
	ProductSubtypes []string `json:"productSubtypes"`
	Requesters      []string `json:"requesters"`
	Approvers       []string `json:"approvers"`
}

type WarehouseEntry struct {
	ID                   int64   `json:"id"`
	StockID              *string `json:"stockId"`
	TransactionType      *string `json:"transactionType"`
	TransactionDate      *string `json:"transactionDate"`
	Category             *string `json:"category"`
	ProductType          *string `json:"productType"`
	ProductSubtype       *string `json:"productSubtype"`
	ProductCode          *string `json:"productCode"`
	ProductName          *string `json:"productName"`
	ProductImage         *string `json:"productImage"`
	Unit                 *string `json:"unit"`
	ProductLot           *string `json:"productLot"`
	ProductPrice         *float64 `json:"productPrice"`
	ReceivedFromCompany  *string `json:"receivedFromCompany"`
	ReceiptBillNumber    *string `json:"receiptBillNumber"`
	RequestingDepartment *string `json:"requestingDepartment"`
	RequisitionNumber    *string `json:"requisitionNumber"`
	QuotaAmount          *int64  `json:"quotaAmount"`
	CarriedForwardQty    *int64  `json:"carriedForwardQty"`
	CarriedForwardValue  float64 `json:"carriedForwardValue"`
	TransactionPrice     float64 `json:"transactionPrice"`
	TransactionQuantity  *int64  `json:"transactionQuantity"`
	TransactionValue     float64 `json:"transactionValue"`
	RemainingQuantity    *int64  `json:"remainingQuantity"`
	RemainingValue       float64 `json:"remainingValue"`
	InventoryStatus      *string `json:"inventoryStatus"`
}

type WarehouseEntryInput struct {
	StockID              *string `json:"stockId"`
	TransactionType      *string `json:"transactionType"`
	TransactionDate      *string `json:"transactionDate"`
	Category             *string `json:"category"`
	ProductType          *string `json:"productType"`
	ProductSubtype       *string `json:"productSubtype"`
	ProductCode          *string `json:"productCode"`
	ProductName          *string `json:"productName"`
	ProductImage         *string `json:"productImage"`
	Unit                 *string `json:"unit"`
	ProductLot           *string `json:"productLot"`
	ProductPrice         *float64 `json:"productPrice"`
	ReceivedFromCompany  *string `json:"receivedFromCompany"`
	ReceiptBillNumber    *string `json:"receiptBillNumber"`
	RequestingDepartment *string `json:"requestingDepartment"`
	RequisitionNumber    *string `json:"requisitionNumber"`
	QuotaAmount          *int64  `json:"quotaAmount"`
	CarriedForwardQty    *int64  `json:"carriedForwardQty"`
	CarriedForwardValue  float64 `json:"carriedForwardValue"`
	TransactionPrice     float64 `json:"transactionPrice"`
	TransactionQuantity  *int64  `json:"transactionQuantity"`
	TransactionValue     float64 `json:"transactionValue"`
	RemainingQuantity    *int64  `json:"remainingQuantity"`
	RemainingValue       float64 `json:"remainingValue"`
	InventoryStatus      *string `json:"inventoryStatus"`
}

type WarehouseFilter struct {
	ProductName          string
	Category             string
	ProductType          string
	ProductSubtype       string
	RequestingDepartment string
	OrderBy              string
	SortDesc             bool
	Page                 int
	PageSize             int
}

type WarehouseFilterValues struct {
	TransactionTypes []string `json:"transactionTypes"`
	Categories       []string `json:"categories"`
	ProductTypes     []string `json:"productTypes"`
	ProductSubtypes  []string `json:"productSubtypes"`
	Companies        []string `json:"companies"`
	Departments      []string `json:"departments"`
}
