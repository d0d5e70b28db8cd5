package postgres

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"zoo-registry/internal/domain/zoos"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildFindQuery_NoCriteria(t *testing.T) {
	query, args, err := buildFindQuery(zoos.SearchCriteria{}, zoos.Pageable{Page: 0, Size: 5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(query, `FROM "zoos"`) {
		t.Fatalf("missing table: %s", query)
	}
	if strings.Contains(query, "WHERE") {
		t.Fatalf("unexpected WHERE without criteria: %s", query)
	}
	if !strings.Contains(query, "LIMIT") || !strings.Contains(query, "OFFSET") {
		t.Fatalf("pagination missing: %s", query)
	}
	if !strings.Contains(query, `ORDER BY "id" ASC`) {
		t.Fatalf("stable order missing: %s", query)
	}
	// limit y offset van como placeholders
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
}

func TestBuildFindQuery_SizeZeroSkipsPagination(t *testing.T) {
	query, args, err := buildFindQuery(zoos.SearchCriteria{}, zoos.Pageable{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "OFFSET") {
		t.Fatalf("size 0 must not paginate: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildFindQuery_AllCriteria(t *testing.T) {
	fee := decimal.NewFromFloat(16.50)
	c := zoos.SearchCriteria{
		Designation: strPtr("zoo"),
		EntranceFee: &fee,
		Open:        boolPtr(true),
		Homepage:    strPtr("https://example.org"),
	}

	query, args, err := buildFindQuery(c, zoos.Pageable{Page: 2, Size: 10})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !strings.Contains(query, "ILIKE") {
		t.Fatalf("designation must use ILIKE: %s", query)
	}
	if !strings.Contains(query, `"entrance_fee" <=`) {
		t.Fatalf("entranceFee must be upper bound: %s", query)
	}
	// 4 criterios + limit + offset
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d: %v", len(args), args)
	}
	if args[0] != "%zoo%" {
		t.Fatalf("designation arg must be wrapped in wildcards, got %v", args[0])
	}
	// offset = page * size
	if fmt.Sprint(args[len(args)-1]) != "20" {
		t.Fatalf("expected offset 20, got %v", args[len(args)-1])
	}
}

func TestBuildCountQuery_SharesFilterIgnoresPagination(t *testing.T) {
	c := zoos.SearchCriteria{Open: boolPtr(false)}

	query, args, err := buildCountQuery(c)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(query, "COUNT(*)") {
		t.Fatalf("expected COUNT(*): %s", query)
	}
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "OFFSET") {
		t.Fatalf("count must not paginate: %s", query)
	}
	if !strings.Contains(query, `"open"`) {
		t.Fatalf("filter missing: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
}
