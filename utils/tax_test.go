package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCorporateTaxNoTaxOnLosses(t *testing.T) {
	assert.Equal(t, 0.0, CalculateCorporateTax(0))
	assert.Equal(t, 0.0, CalculateCorporateTax(-1))
	assert.Equal(t, 0.0, CalculateCorporateTax(-30000))
}

func TestCalculateCorporateTaxLowerBracket(t *testing.T) {
	assert.Equal(t, 19000.0, CalculateCorporateTax(100000))
	assert.Equal(t, 38000.0, CalculateCorporateTax(200000))
}

func TestCalculateCorporateTaxUpperBracket(t *testing.T) {
	// 38,000 on the first 200,000 plus 25.8% on the excess
	assert.Equal(t, 38000.0+50000*0.258, CalculateCorporateTax(250000))
	assert.Equal(t, 50900.0, CalculateCorporateTax(250000))
	assert.Equal(t, 38000.0+150000*0.258, CalculateCorporateTax(350000))
	assert.Equal(t, 76700.0, CalculateCorporateTax(350000))
}
