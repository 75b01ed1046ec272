package dto

import "strings"

// Principal is the authenticated caller: the owner (store) scoping all catalog data and the
// acting user recorded as created_by.
type Principal struct {
	OwnerID string
	UserID  string
}

type ProductRequest struct {
	Business         []string                `json:"business" validate:"required,min=1,dive,objectid"`
	Name             string                  `json:"name" validate:"required,min=5,max=200"`
	ShortDescription string                  `json:"short_description" validate:"required,min=10,max=500"`
	LongDescription  string                  `json:"long_description,omitempty" validate:"omitempty,min=20,max=5000"`
	Tags             []string                `json:"tags,omitempty" validate:"omitempty,min=1,max=80,dive,min=2"`
	Images           []string                `json:"images" validate:"required,min=1,max=12,dive,objectid"`
	Video            []string                `json:"video,omitempty" validate:"omitempty,min=1,max=2,dive,objectid"`
	Category         string                  `json:"category" validate:"required,objectid"`
	Warehouse        string                  `json:"warehouse,omitempty" validate:"omitempty,objectid"`
	Brand            string                  `json:"brand,omitempty" validate:"omitempty,objectid"`
	Supplier         string                  `json:"supplier,omitempty" validate:"omitempty,objectid"`
	SizeGuard        string                  `json:"sizeGuard,omitempty" validate:"omitempty,objectid"`
	HasVariants      bool                    `json:"hasVariants"`
	IsPublish        *bool                   `json:"isPublish,omitempty"`
	Currency         string                  `json:"currency,omitempty" validate:"omitempty,oneof=BDT"`
	Variants         []ProductVariantRequest `json:"variants" validate:"required,min=1,dive"`
}

type ProductVariantRequest struct {
	SKU               string   `json:"sku" validate:"required,min=3,max=18,sku"`
	Image             string   `json:"image,omitempty" validate:"omitempty,objectid"`
	BuyingPrice       string   `json:"buying_price" validate:"required,price"`
	SellingPrice      string   `json:"selling_price" validate:"required,price"`
	Condition         string   `json:"condition,omitempty" validate:"omitempty,condition"`
	VariantsStock     int64    `json:"variants_stock" validate:"min=0"`
	VariantsValues    []string `json:"variants_values,omitempty" validate:"omitempty,min=2"`
	DiscountType      string   `json:"discount_type,omitempty" validate:"omitempty,oneof=fixed percent"`
	DiscountAmount    string   `json:"discount_amount,omitempty" validate:"omitempty,price"`
	DiscountPercent   string   `json:"discount_percent,omitempty" validate:"omitempty,price,percent"`
	DiscountStartDate *Date    `json:"discount_start_date,omitempty"`
	DiscountEndDate   *Date    `json:"discount_end_date,omitempty"`
	IsPreOrder        bool     `json:"isPreOrder"`
	IsPublish         *bool    `json:"isPublish,omitempty"`
}

// Normalize trims the free-text fields so that length rules apply to the visible text.
func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ShortDescription = strings.TrimSpace(r.ShortDescription)
	r.LongDescription = strings.TrimSpace(r.LongDescription)

	for i := range r.Tags {
		r.Tags[i] = strings.TrimSpace(r.Tags[i])
	}

	for i := range r.Variants {
		r.Variants[i].SKU = strings.TrimSpace(r.Variants[i].SKU)
	}
}
