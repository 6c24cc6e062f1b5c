package tables

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RMDStartAge is the age at which Required Minimum Distributions begin
// (SECURE 2.0 rule for those reaching 73 after 2022).
const RMDStartAge = 73

// uniformLifetime holds the IRS Uniform Lifetime divisors for ages
// RMDStartAge..RMDStartAge+len-1. The slice must be dense: a gap would be
// a data bug, not a runtime condition.
var uniformLifetime = []decimal.Decimal{
	decimal.NewFromFloat(26.5), // 73
	decimal.NewFromFloat(25.5), // 74
	decimal.NewFromFloat(24.6), // 75
	decimal.NewFromFloat(23.7), // 76
	decimal.NewFromFloat(22.9), // 77
	decimal.NewFromFloat(22.0), // 78
	decimal.NewFromFloat(21.1), // 79
	decimal.NewFromFloat(20.2), // 80
	decimal.NewFromFloat(19.4), // 81
	decimal.NewFromFloat(18.5), // 82
	decimal.NewFromFloat(17.7), // 83
	decimal.NewFromFloat(16.8), // 84
	decimal.NewFromFloat(16.0), // 85
	decimal.NewFromFloat(15.2), // 86
	decimal.NewFromFloat(14.4), // 87
	decimal.NewFromFloat(13.7), // 88
	decimal.NewFromFloat(12.9), // 89
	decimal.NewFromFloat(12.2), // 90
	decimal.NewFromFloat(11.5), // 91
	decimal.NewFromFloat(10.8), // 92
	decimal.NewFromFloat(10.1), // 93
	decimal.NewFromFloat(9.5),  // 94
	decimal.NewFromFloat(8.9),  // 95
	decimal.NewFromFloat(8.4),  // 96
	decimal.NewFromFloat(7.8),  // 97
	decimal.NewFromFloat(7.3),  // 98
	decimal.NewFromFloat(6.8),  // 99
	decimal.NewFromFloat(6.4),  // 100
	decimal.NewFromFloat(6.0),  // 101
	decimal.NewFromFloat(5.6),  // 102
	decimal.NewFromFloat(5.2),  // 103
	decimal.NewFromFloat(4.9),  // 104
	decimal.NewFromFloat(4.6),  // 105
}

// RMDDivisor returns the Uniform Lifetime divisor for an age at or beyond
// RMDStartAge. Ages past the end of the table clamp to the last entry;
// ages below the start age are a caller bug and panic.
func RMDDivisor(age int) decimal.Decimal {
	if age < RMDStartAge {
		panic(fmt.Sprintf("tables: no RMD divisor below start age, got %d", age))
	}
	idx := age - RMDStartAge
	if idx >= len(uniformLifetime) {
		idx = len(uniformLifetime) - 1
	}
	return uniformLifetime[idx]
}
