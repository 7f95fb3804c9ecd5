package risk

import "github.com/Irushi-coder/high-performance-trading-system/internal/core"

// Limits defines the trading constraints validateOrder enforces. Zero
// values disable the corresponding check (treated as "no limit") so a
// caller can opt into only the checks it cares about.
type Limits struct {
	MaxOrderSize       core.Quantity
	MaxOrderValue      float64
	MaxPositionSize    int64
	MaxPositionValue   float64
	MaxDailyLoss       float64
	MaxDrawdown        float64
	MaxOrdersPerSecond int
}

// DefaultLimits mirrors the conservative defaults used by the reference
// desk configuration.
func DefaultLimits() Limits {
	return Limits{
		MaxOrderSize:       10000,
		MaxOrderValue:      1_000_000.0,
		MaxPositionSize:    50000,
		MaxPositionValue:   5_000_000.0,
		MaxDailyLoss:       100_000.0,
		MaxDrawdown:        200_000.0,
		MaxOrdersPerSecond: 100,
	}
}
