package chat

// schemaDescriptor is the static schema text handed to the model. It must
// stay in sync with internal/migrations/sql. Identifiers are quoted because
// the schema uses case-sensitive names.
const schemaDescriptor = `
TABLE "User" (
  "id"        integer, primary key
  "email"     text, unique
  "name"      text, nullable
  "password"  text
  "createdAt" timestamp
  "updatedAt" timestamp
)

TABLE "Department" (
  "id"   integer, primary key
  "name" text
)

TABLE "Seller" (
  "id"       integer, primary key
  "code"     text, unique
  "prefix"   text, nullable
  "name"     text
  "business" text, nullable
  "address"  text, nullable
  "phone"    text, nullable
  "fax"      text, nullable
  "mobile"   text, nullable
)

TABLE "Product" (
  "id"           integer, primary key
  "code"         text, unique
  "category"     text
  "name"         text
  "type"         text
  "subtype"      text
  "unit"         text
  "costPrice"    numeric(10,2), nullable
  "sellPrice"    numeric(10,2), nullable
  "stockBalance" integer, nullable
  "stockValue"   numeric(10,2), nullable
  "sellerCode"   text, nullable
  "image"        text, nullable
  "flagActivate" boolean, default true
  "adminNote"    text, nullable
)

TABLE "Category" (
  "id"       integer, primary key
  "category" text
  "type"     text
  "subtype"  text, nullable
)

TABLE "Survey" (
  "id"              integer, primary key
  "productCode"     text, nullable
  "category"        text, nullable
  "type"            text, nullable
  "subtype"         text, nullable
  "productName"     text, nullable
  "requestedAmount" integer, nullable
  "unit"            text, nullable
  "pricePerUnit"    numeric(10,2), default 0
  "requestingDept"  text, nullable
  "approvedQuota"   integer, nullable
)

TABLE "PurchasePlan" (
  "id"                      integer, primary key
  "productCode"             text, nullable
  "category"                text, nullable
  "productName"             text, nullable
  "productType"             text, nullable
  "productSubtype"          text, nullable
  "unit"                    text, nullable
  "pricePerUnit"            numeric(10,2), default 0
  "budgetYear"              text, nullable
  "planId"                  integer, nullable
  "inPlan"                  text, nullable
  "carriedForwardQuantity"  integer, nullable
  "carriedForwardValue"     numeric(10,2), default 0
  "requiredQuantityForYear" integer, nullable
  "totalRequiredValue"      numeric(10,2), default 0
  "additionalPurchaseQty"   integer, nullable
  "additionalPurchaseValue" numeric(10,2), default 0
  "purchasingDepartment"    text, nullable
)

TABLE "PurchaseApproval" (
  "id"                integer, primary key
  "approvalId"        text, nullable
  "department"        text, nullable
  "recordNumber"      text, nullable
  "requestDate"       text, nullable
  "productName"       text, nullable
  "productCode"       text, nullable
  "category"          text, nullable
  "productType"       text, nullable
  "productSubtype"    text, nullable
  "requestedQuantity" integer, nullable
  "unit"              text, nullable
  "pricePerUnit"      numeric(10,2), default 0
  "totalValue"        numeric(10,2), default 0
  "overPlanCase"      text, nullable
  "requester"         text, nullable
  "approver"          text, nullable
)

TABLE "Warehouse" (
  "id"                   integer, primary key
  "stockId"              text, nullable
  "transactionType"      text, nullable
  "transactionDate"      text, nullable
  "category"             text, nullable
  "productType"          text, nullable
  "productSubtype"       text, nullable
  "productCode"          text, nullable
  "productName"          text, nullable
  "productImage"         text, nullable
  "unit"                 text, nullable
  "productLot"           text, nullable
  "productPrice"         numeric(10,2), nullable
  "receivedFromCompany"  text, nullable
  "receiptBillNumber"    text, nullable
  "requestingDepartment" text, nullable
  "requisitionNumber"    text, nullable
  "quotaAmount"          integer, nullable
  "carriedForwardQty"    integer, nullable
  "carriedForwardValue"  numeric(10,2), default 0
  "transactionPrice"     numeric(10,2), default 0
  "transactionQuantity"  integer, nullable
  "transactionValue"     numeric(10,2), default 0
  "remainingQuantity"    integer, nullable
  "remainingValue"       numeric(10,2), default 0
  "inventoryStatus"      text, nullable
)

Relationships are name-based and not enforced by foreign keys:
- "Product"."category", "Product"."type" and "Product"."subtype" match "Category"."category", "Category"."type" and "Category"."subtype".
- "Product"."sellerCode" matches "Seller"."code".
- "Survey"."requestingDept", "PurchasePlan"."purchasingDepartment" and "Warehouse"."requestingDepartment" match "Department"."name".
- "Survey"."productCode", "PurchasePlan"."productCode", "PurchaseApproval"."productCode" and "Warehouse"."productCode" match "Product"."code".
`
