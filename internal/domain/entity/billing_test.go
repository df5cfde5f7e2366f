package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	t.Parallel()

	lines := []BillLine{
		{Description: "MRF ZLX 185/65R15", Quantity: "2", UnitPrice: "100"},
		{Description: "Valve", Quantity: "1", UnitPrice: "50"},
	}

	totals := CalculateTotals(lines, "18", "2")

	assert.Equal(t, "250.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "45.00", totals.GSTAmount.StringFixed(2))
	assert.Equal(t, "5.00", totals.CSTAmount.StringFixed(2))
	assert.Equal(t, "300.00", totals.GrandTotal.StringFixed(2))
}

func TestCalculateTotalsIsPure(t *testing.T) {
	t.Parallel()

	lines := []BillLine{
		{Quantity: "3", UnitPrice: "1999.99"},
		{Quantity: "abc", UnitPrice: "10"},
		{Quantity: "1", UnitPrice: "0.01"},
	}

	first := CalculateTotals(lines, "12.5", "")
	second := CalculateTotals(lines, "12.5", "")

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.GSTAmount.Equal(second.GSTAmount))
	assert.True(t, first.CSTAmount.Equal(second.CSTAmount))
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
}

func TestMalformedLinesContributeZero(t *testing.T) {
	t.Parallel()

	cases := []BillLine{
		{Quantity: "", UnitPrice: "100"},
		{Quantity: "2", UnitPrice: ""},
		{Quantity: "0", UnitPrice: "100"},
		{Quantity: "-1", UnitPrice: "100"},
		{Quantity: "2", UnitPrice: "-5"},
		{Quantity: "two", UnitPrice: "100"},
		{Quantity: "2", UnitPrice: "ten"},
	}

	for _, line := range cases {
		if !line.Amount().IsZero() {
			t.Errorf("line {qty:%q price:%q} must contribute zero, got %s",
				line.Quantity, line.UnitPrice, line.Amount())
		}
	}

	totals := CalculateTotals(cases, "18", "2")
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestAbsentPercentCountsAsZeroTax(t *testing.T) {
	t.Parallel()

	lines := []BillLine{{Quantity: "1", UnitPrice: "100"}}

	for _, pct := range []string{"", "n/a", "-5"} {
		totals := CalculateTotals(lines, pct, pct)
		assert.True(t, totals.GSTAmount.IsZero(), "gst %q", pct)
		assert.True(t, totals.CSTAmount.IsZero(), "cst %q", pct)
		assert.Equal(t, "100.00", totals.GrandTotal.StringFixed(2))
	}
}
