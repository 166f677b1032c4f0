package feedv1

import (
	"fmt"

	"github.com/shopspring/decimal"

	bookv1 "github.com/muhammadchandra19/market-depth/internal/domain/book/v1"
	"github.com/muhammadchandra19/market-depth/pkg/errors"
)

// priceScale is the number of decimal digits carried by fixed-point prices.
const priceScale = 9

// ParsePrice converts a decimal price string (e.g. "5.510000000") to its
// fixed-point representation at scale 1e-9, rounding half away from zero.
// An empty field means "no price" and maps to the sentinel.
func ParsePrice(s string) (int64, error) {
	if s == "" {
		return bookv1.UndefPrice, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.NewErrorDetails(
			fmt.Sprintf("invalid price %q", s),
			errors.InvalidRecordError,
			"price",
		)
	}
	return d.Shift(priceScale).Round(0).IntPart(), nil
}

// FormatPrice renders a fixed-point price with two decimal places for CSV
// output. The sentinel renders as an empty field.
func FormatPrice(price int64) string {
	if price == bookv1.UndefPrice {
		return ""
	}
	return decimal.New(price, -priceScale).StringFixed(2)
}
