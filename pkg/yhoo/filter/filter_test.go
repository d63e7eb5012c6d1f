package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	names := []string{"Core", "International", "tech/US", "tech/JP", "annualTotalRevenue", "quarterlyNetIncome"}
	tests := []struct {
		expr string
		want []string
	}{
		{"", names},
		{"Core,International", []string{"Core", "International"}},
		{"tech/*", []string{"tech/US", "tech/JP"}},
		{"/^quarterly/", []string{"quarterlyNetIncome"}},
		{"REVENUE", []string{"annualTotalRevenue"}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Select(f, names))
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("/([/")
	assert.Error(t, err)
	_, err = Parse("a[")
	assert.Error(t, err)
}
