package chat

import "testing"

func TestApproveStatementAcceptsSelectPrefix(t *testing.T) {
	approved := []string{
		"SELECT 1",
		"  select * from \"Product\"",
		"\n\tSELECT name FROM \"Seller\"",
		// The gate is a prefix check, so a chained statement behind a
		// leading SELECT still passes.
		`SELECT 1; DROP TABLE "Product"`,
	}
	for _, sqlText := range approved {
		if err := ApproveStatement(sqlText); err != nil {
			t.Fatalf("ApproveStatement(%q) error = %v", sqlText, err)
		}
	}
}

func TestApproveStatementRejectsNonSelect(t *testing.T) {
	rejected := []string{
		"UPDATE x SET y=1",
		`DELETE FROM "Product"`,
		`INSERT INTO "Product" VALUES (1)`,
		`DROP TABLE "Product"`,
		"WITH t AS (SELECT 1) SELECT * FROM t",
		"",
		"   ",
	}
	for _, sqlText := range rejected {
		err := ApproveStatement(sqlText)
		if err == nil {
			t.Fatalf("ApproveStatement(%q) expected error", sqlText)
		}
		kind, ok := KindOf(err)
		if !ok || kind != KindDisallowedStatement {
			t.Fatalf("ApproveStatement(%q) kind = %v", sqlText, kind)
		}
	}
}
