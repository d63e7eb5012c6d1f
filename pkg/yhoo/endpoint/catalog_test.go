package endpoint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadCatalog(t *testing.T) {
	got := ReadCatalog(strings.NewReader("  TotalRevenue \n\n\tNetIncome\n"))
	assert.Equal(t, []string{"TotalRevenue", "NetIncome"}, got)
}

func TestFundamentalsTypes(t *testing.T) {
	types := FundamentalsTypes()
	assert.Contains(t, types, "WorkInProcess")
	assert.Contains(t, types, "ConstructionInProgress")
	for _, ty := range types {
		assert.Equal(t, strings.TrimSpace(ty), ty)
		assert.NotEmpty(t, ty)
	}
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t,
		[]string{"quarterlyA", "quarterlyB"},
		Prefixed("quarterly", []string{"A", "B"}))
}
