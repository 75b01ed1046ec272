package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func variantPath(index int, field string) string {
	if field == "" {
		return fmt.Sprintf("variants/%d", index)
	}

	return fmt.Sprintf("variants/%d/%s", index, field)
}

// validateVariantRules runs the variant checks in order and stops at the first violation.
func (s *ProductServiceImpl) validateVariantRules(ctx context.Context, owner primitive.ObjectID, data dto.ProductRequest) error {
	if err := validateVariantCardinality(data.HasVariants, data.Variants); err != nil {
		return err
	}

	if err := validateVariantPrices(data.Variants); err != nil {
		return err
	}

	if err := validateUniqueSKUs(data.Variants); err != nil {
		return err
	}

	if err := s.validatePersistedSKUs(ctx, owner, data.Variants); err != nil {
		return err
	}

	return validateVariantDiscounts(data.Variants)
}

func validateVariantCardinality(hasVariants bool, variants []dto.ProductVariantRequest) error {
	if hasVariants && len(variants) <= 1 {
		return errs.BadRequest("variants", "Allowed multiple variants when hasVariants is true!")
	}

	if !hasVariants && len(variants) != 1 {
		return errs.BadRequest("variants", "Allowed only one variant when hasVariants is false!")
	}

	return nil
}

func validateVariantPrices(variants []dto.ProductVariantRequest) error {
	for i, variant := range variants {
		buyingPrice, err := utils.ParsePrice(variant.BuyingPrice)
		if err != nil {
			return errs.BadRequest(variantPath(i, "buying_price"), "Buying price must be a valid number!")
		}

		sellingPrice, err := utils.ParsePrice(variant.SellingPrice)
		if err != nil {
			return errs.BadRequest(variantPath(i, "selling_price"), "Selling price must be a valid number!")
		}

		if buyingPrice.GreaterThanOrEqual(sellingPrice) {
			return errs.BadRequest(variantPath(i, "buying_price"), "Buying price must be less than selling price!")
		}
	}

	return nil
}

// validateUniqueSKUs compares SKUs case-insensitively, matching the collation of the
// persisted unique index.
func validateUniqueSKUs(variants []dto.ProductVariantRequest) error {
	seen := make(map[string]struct{}, len(variants))
	for i, variant := range variants {
		key := strings.ToLower(variant.SKU)
		if _, ok := seen[key]; ok {
			return errs.BadRequest(variantPath(i, "sku"), "This %s SKU must be unique!", variant.SKU)
		}
		seen[key] = struct{}{}
	}

	return nil
}

func (s *ProductServiceImpl) validatePersistedSKUs(ctx context.Context, owner primitive.ObjectID, variants []dto.ProductVariantRequest) error {
	for i, variant := range variants {
		exists, err := s.productRepo.IsSKUExists(ctx, owner, variant.SKU)
		if err != nil {
			return err
		}

		if exists {
			return skuAlreadyCreated(i, variant.SKU)
		}
	}

	return nil
}

func skuAlreadyCreated(index int, sku string) error {
	return errs.BadRequest(variantPath(index, "sku"), "This %q SKU is already created!", sku)
}

func validateVariantDiscounts(variants []dto.ProductVariantRequest) error {
	for i, variant := range variants {
		if variant.DiscountType == "" {
			continue
		}

		discountType := domain.DiscountType(variant.DiscountType)
		if !discountType.Valid() {
			return errs.BadRequest(variantPath(i, "discount_type"), "Discount type must be fixed or percent!")
		}

		if discountType == domain.DiscountFixed && variant.DiscountPercent != "" {
			return errs.BadRequest(variantPath(i, "discount_percent"), "Discount type is fixed, so discount percent is not allowed!")
		} else if discountType == domain.DiscountPercent && variant.DiscountAmount != "" {
			return errs.BadRequest(variantPath(i, "discount_amount"), "Discount type is percent, so discount amount is not allowed!")
		}

		if discountType == domain.DiscountFixed && variant.DiscountAmount == "" {
			return errs.BadRequest(variantPath(i, "discount_amount"), "Discount type is fixed, so discount amount is required!")
		} else if discountType == domain.DiscountPercent && variant.DiscountPercent == "" {
			return errs.BadRequest(variantPath(i, "discount_percent"), "Discount type is percent, so discount percent is required!")
		}

		if discountType == domain.DiscountFixed {
			if _, err := utils.ParsePrice(variant.DiscountAmount); err != nil {
				return errs.BadRequest(variantPath(i, "discount_amount"), "Discount amount must be a valid number!")
			}
		} else if _, err := utils.ParsePrice(variant.DiscountPercent); err != nil {
			return errs.BadRequest(variantPath(i, "discount_percent"), "Discount percent must be a valid number!")
		}

		if variant.DiscountStartDate == nil {
			return errs.BadRequest(variantPath(i, "discount_start_date"), "Discount start date is required!")
		} else if variant.DiscountEndDate == nil {
			return errs.BadRequest(variantPath(i, "discount_end_date"), "Discount end date is required!")
		}

		if variant.DiscountEndDate.Before(variant.DiscountStartDate.Time) {
			return errs.BadRequest(variantPath(i, "discount_end_date"), "Discount end date must be after the start date!")
		}
	}

	return nil
}
