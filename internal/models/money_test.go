package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalJSONFixedDecimals(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("1234.5"))
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"1234.50"` {
		t.Fatalf("unexpected output: %s", b)
	}
}

func TestMoneyUnmarshalJSONStringAndNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"99.999"`), &m); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if !m.Decimal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected rounded 100.00, got %s", m.String())
	}

	if err := json.Unmarshal([]byte(`25000000`), &m); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if !m.Decimal.Equal(decimal.RequireFromString("25000000")) {
		t.Fatalf("expected 25000000, got %s", m.String())
	}
}

func TestMoneyArithmetic(t *testing.T) {
	unit := NewMoneyFromDecimal(decimal.RequireFromString("1500000"))
	total := unit.MulInt(3).AddMoney(NewMoneyFromInt(500000))
	if !total.Decimal.Equal(decimal.RequireFromString("5000000")) {
		t.Fatalf("expected 5000000, got %s", total.String())
	}
}
