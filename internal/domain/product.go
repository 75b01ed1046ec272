package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CurrencyBDT = "BDT"

type Product struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Owner            primitive.ObjectID   `bson:"owner" json:"owner"`
	Business         []primitive.ObjectID `bson:"business" json:"business"`
	CreatedBy        primitive.ObjectID   `bson:"created_by" json:"created_by"`
	Name             string               `bson:"name" json:"name"`
	ShortDescription string               `bson:"short_description,omitempty" json:"short_description,omitempty"`
	LongDescription  string               `bson:"long_description,omitempty" json:"long_description,omitempty"`
	Tags             []string             `bson:"tags" json:"tags"`
	Images           []primitive.ObjectID `bson:"images" json:"images"`
	Video            []primitive.ObjectID `bson:"video" json:"video"`
	Category         primitive.ObjectID   `bson:"category" json:"category"`
	Warehouse        *primitive.ObjectID  `bson:"warehouse,omitempty" json:"warehouse,omitempty"`
	Brand            *primitive.ObjectID  `bson:"brand,omitempty" json:"brand,omitempty"`
	Supplier         *primitive.ObjectID  `bson:"supplier,omitempty" json:"supplier,omitempty"`
	SizeGuard        *primitive.ObjectID  `bson:"sizeGuard,omitempty" json:"sizeGuard,omitempty"`
	TotalStock       int64                `bson:"total_stock" json:"total_stock"`
	TotalSold        int64                `bson:"total_sold" json:"total_sold"`
	HasVariants      bool                 `bson:"hasVariants" json:"hasVariants"`
	VariantsID       []primitive.ObjectID `bson:"variantsId,omitempty" json:"variantsId"`
	Currency         string               `bson:"currency" json:"currency"`
	IsPublish        bool                 `bson:"isPublish" json:"isPublish"`
	IsDeleted        bool                 `bson:"isDeleted" json:"isDeleted"`
	CreationID       string               `bson:"creation_id" json:"-"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type ProductVariant struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Owner             primitive.ObjectID  `bson:"owner" json:"owner"`
	ProductID         primitive.ObjectID  `bson:"productId" json:"productId"`
	Name              string              `bson:"name" json:"name"`
	Image             *primitive.ObjectID `bson:"image,omitempty" json:"image,omitempty"`
	Barcode           string              `bson:"barcode" json:"barcode"`
	SKU               string              `bson:"sku" json:"sku"`
	BuyingPrice       string              `bson:"buying_price" json:"buying_price"`
	SellingPrice      string              `bson:"selling_price" json:"selling_price"`
	Condition         Condition           `bson:"condition" json:"condition"`
	DiscountType      *DiscountType       `bson:"discount_type" json:"discount_type"`
	DiscountPercent   *string             `bson:"discount_percent" json:"discount_percent"`
	DiscountAmount    *string             `bson:"discount_amount" json:"discount_amount"`
	DiscountStartDate *time.Time          `bson:"discount_start_date" json:"discount_start_date"`
	DiscountEndDate   *time.Time          `bson:"discount_end_date" json:"discount_end_date"`
	OfferPrice        string              `bson:"offer_price" json:"offer_price"`
	Profit            string              `bson:"profit" json:"profit"`
	Margin            string              `bson:"margin" json:"margin"`
	VariantsStock     int64               `bson:"variants_stock" json:"variants_stock"`
	VariantsValues    []string            `bson:"variants_values" json:"variants_values"`
	TotalSold         int64               `bson:"total_sold" json:"total_sold"`
	IsPreOrder        bool                `bson:"isPreOrder" json:"isPreOrder"`
	IsPublish         bool                `bson:"isPublish" json:"isPublish"`
	IsDeleted         bool                `bson:"isDeleted" json:"isDeleted"`
	CreationID        string              `bson:"creation_id" json:"-"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type DiscountType string

const (
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

func (t DiscountType) Valid() bool {
	return t == DiscountFixed || t == DiscountPercent
}

// Condition is the merchandising tag of a variant.
type Condition string

const (
	ConditionBestSelling Condition = "best selling"
	ConditionTrending    Condition = "trending"
	ConditionNew         Condition = "new"
	ConditionLatest      Condition = "latest"
	ConditionLimited     Condition = "limited"
	ConditionExclusive   Condition = "exclusive"
	ConditionHot         Condition = "hot"
	ConditionPopular     Condition = "popular"
	ConditionUpcoming    Condition = "upcoming"
	ConditionLuxury      Condition = "luxury"
	ConditionPreOrder    Condition = "pre order"
	ConditionFeatured    Condition = "featured"
	ConditionSale        Condition = "sale"
	ConditionTop         Condition = "top"
	ConditionBest        Condition = "best"
	ConditionNewArrival  Condition = "new arrival"
)

var Conditions = []Condition{
	ConditionBestSelling,
	ConditionTrending,
	ConditionNew,
	ConditionLatest,
	ConditionLimited,
	ConditionExclusive,
	ConditionHot,
	ConditionPopular,
	ConditionUpcoming,
	ConditionLuxury,
	ConditionPreOrder,
	ConditionFeatured,
	ConditionSale,
	ConditionTop,
	ConditionBest,
	ConditionNewArrival,
}

func (c Condition) Valid() bool {
	for _, condition := range Conditions {
		if c == condition {
			return true
		}
	}

	return false
}
