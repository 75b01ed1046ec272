package utils

import (
	"fmt"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParsePrice parses a decimal price string such as "120.50".
func ParsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errs.ErrInvalidPriceValue, value)
	}

	return price, nil
}

// parseOptional treats an empty string as zero.
func parseOptional(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}

	return ParsePrice(value)
}

func CalculateProfitAndMargin(buyingPrice, sellingPrice string) (profit decimal.Decimal, margin decimal.Decimal, err error) {
	buying, err := ParsePrice(buyingPrice)
	if err != nil {
		return
	}

	selling, err := ParsePrice(sellingPrice)
	if err != nil {
		return
	}

	if selling.IsZero() {
		err = errs.ErrZeroSellingPrice
		return
	}

	profit = selling.Sub(buying)
	margin = profit.Div(selling).Mul(hundred)

	return profit, margin, nil
}

// CalculateOfferPrice derives the discounted price. Fixed and percent discounts are
// applied to the buying price, not the selling price. An empty discount type means no
// discount.
func CalculateOfferPrice(buyingPrice, sellingPrice string, discountType domain.DiscountType, discountAmount, discountPercent string) (decimal.Decimal, error) {
	switch discountType {
	case domain.DiscountFixed:
		buying, err := ParsePrice(buyingPrice)
		if err != nil {
			return decimal.Zero, err
		}

		amount, err := parseOptional(discountAmount)
		if err != nil {
			return decimal.Zero, err
		}

		return buying.Sub(amount), nil
	case domain.DiscountPercent:
		buying, err := ParsePrice(buyingPrice)
		if err != nil {
			return decimal.Zero, err
		}

		percent, err := parseOptional(discountPercent)
		if err != nil {
			return decimal.Zero, err
		}

		return buying.Sub(buying.Mul(percent).Div(hundred)), nil
	case "":
		return ParsePrice(sellingPrice)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported discount type %q", errs.ErrClient, discountType)
	}
}

func CalculateTotalStock(stocks []int64) int64 {
	var total int64
	for _, stock := range stocks {
		total += stock
	}

	return total
}
