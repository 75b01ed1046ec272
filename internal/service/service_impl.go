package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	circuitbreaker "github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/metrics"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxBarcodeAttempts = 3
	maxPublishRetries  = 3
)

// KafkaWriter is satisfied by *kafka.Conn.
type KafkaWriter interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

type ProductServiceImpl struct {
	productRepo     repository.MongoDBProductRepository
	referenceRepo   repository.MongoDBReferenceRepository
	kafkaProducer   KafkaWriter
	breaker         *gobreaker.CircuitBreaker[[]byte]
	tracer          trace.Tracer
	generateBarcode func() string
	publishBackoff  time.Duration
	now             func() time.Time
}

type Option func(*ProductServiceImpl)

func WithBarcodeGenerator(fn func() string) Option {
	return func(s *ProductServiceImpl) {
		s.generateBarcode = fn
	}
}

func WithPublishBackoff(backoff time.Duration) Option {
	return func(s *ProductServiceImpl) {
		s.publishBackoff = backoff
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *ProductServiceImpl) {
		s.now = now
	}
}

// CreateProductService wires the creation pipeline. kafkaProducer may be nil, in which case
// no product_created events are emitted.
func CreateProductService(productRepo repository.MongoDBProductRepository, referenceRepo repository.MongoDBReferenceRepository, kafkaProducer KafkaWriter, opts ...Option) ProductService {
	s := &ProductServiceImpl{
		productRepo:     productRepo,
		referenceRepo:   referenceRepo,
		kafkaProducer:   kafkaProducer,
		breaker:         circuitbreaker.CreateCircuitBreaker("product-event-producer", 30*time.Second),
		tracer:          otel.Tracer("catalog-service"),
		generateBarcode: utils.GenerateBarcode,
		publishBackoff:  time.Second,
		now:             func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, principal dto.Principal, data dto.ProductRequest) (product domain.Product, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	defer func() {
		metrics.ObserveProductCreation(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	owner, err := s.resolveOwner(ctx, principal.OwnerID)
	if err != nil {
		return
	}

	createdBy, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return product, errs.ErrNotLoggedIn
	}

	span.SetAttributes(attribute.String("owner", owner.Hex()), attribute.Int("variants", len(data.Variants)))

	if err = s.validateVariantRules(ctx, owner, data); err != nil {
		return
	}

	refs, err := s.validateReferences(ctx, owner, data)
	if err != nil {
		return
	}

	product = s.buildProduct(owner, createdBy, data, refs)

	variants, err := s.buildVariants(product, data, refs)
	if err != nil {
		return
	}

	product, err = s.persistAggregate(ctx, product, variants)
	if err != nil {
		return domain.Product{}, err
	}

	log.Ctx(ctx).Info().Str("component", "CreateProduct").Str("product_id", product.ID.Hex()).
		Int("variants", len(product.VariantsID)).Msg("product created")

	s.publishProductCreated(ctx, product)

	return product, nil
}

func (s *ProductServiceImpl) resolveOwner(ctx context.Context, ownerID string) (primitive.ObjectID, error) {
	notFound := errs.NotFound("", "Owner information not found!")

	id, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return id, notFound
	}

	owner, err := s.referenceRepo.GetOwnerByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return id, notFound
	}
	if err != nil {
		return id, err
	}

	return owner.ID, nil
}

func (s *ProductServiceImpl) buildProduct(owner primitive.ObjectID, createdBy primitive.ObjectID, data dto.ProductRequest, refs resolvedReferences) domain.Product {
	stocks := make([]int64, 0, len(data.Variants))
	for _, variant := range data.Variants {
		stocks = append(stocks, variant.VariantsStock)
	}

	currency := data.Currency
	if currency == "" {
		currency = domain.CurrencyBDT
	}

	isPublish := true
	if data.IsPublish != nil {
		isPublish = *data.IsPublish
	}

	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}

	now := s.now()

	return domain.Product{
		Owner:            owner,
		Business:         refs.business,
		CreatedBy:        createdBy,
		Name:             data.Name,
		ShortDescription: data.ShortDescription,
		LongDescription:  data.LongDescription,
		Tags:             tags,
		Images:           refs.images,
		Video:            refs.video,
		Category:         refs.category,
		Warehouse:        refs.warehouse,
		Brand:            refs.brand,
		Supplier:         refs.supplier,
		SizeGuard:        refs.sizeGuard,
		TotalStock:       utils.CalculateTotalStock(stocks),
		HasVariants:      data.HasVariants,
		Currency:         currency,
		IsPublish:        isPublish,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// buildVariants derives every variant document except its product id and barcode, which are
// assigned during persistence.
func (s *ProductServiceImpl) buildVariants(product domain.Product, data dto.ProductRequest, refs resolvedReferences) ([]domain.ProductVariant, error) {
	variants := make([]domain.ProductVariant, 0, len(data.Variants))

	for i, v := range data.Variants {
		profit, margin, err := utils.CalculateProfitAndMargin(v.BuyingPrice, v.SellingPrice)
		if err != nil {
			return nil, errs.BadRequest(variantPath(i, "selling_price"), "%s", err.Error())
		}

		discountType := domain.DiscountType(v.DiscountType)
		offerPrice, err := utils.CalculateOfferPrice(v.BuyingPrice, v.SellingPrice, discountType, v.DiscountAmount, v.DiscountPercent)
		if err != nil {
			return nil, errs.BadRequest(variantPath(i, "discount_type"), "%s", err.Error())
		}

		name := product.Name
		if data.HasVariants {
			name = product.Name + " / " + strings.Join(v.VariantsValues, " - ")
		}

		condition := domain.ConditionNew
		if v.Condition != "" {
			condition = domain.Condition(v.Condition)
		}
		if !condition.Valid() {
			return nil, errs.BadRequest(variantPath(i, "condition"), "Product condition %q is not supported!", v.Condition)
		}

		isPublish := true
		if v.IsPublish != nil {
			isPublish = *v.IsPublish
		}

		values := v.VariantsValues
		if values == nil {
			values = []string{}
		}

		variant := domain.ProductVariant{
			Owner:          product.Owner,
			Name:           name,
			Image:          refs.variantImages[i],
			SKU:            v.SKU,
			BuyingPrice:    v.BuyingPrice,
			SellingPrice:   v.SellingPrice,
			Condition:      condition,
			Profit:         profit.String(),
			Margin:         margin.String(),
			OfferPrice:     offerPrice.String(),
			VariantsStock:  v.VariantsStock,
			VariantsValues: values,
			IsPreOrder:     v.IsPreOrder,
			IsPublish:      isPublish,
			CreatedAt:      product.CreatedAt,
			UpdatedAt:      product.UpdatedAt,
		}

		if discountType != "" {
			variant.DiscountType = &discountType
		}
		if v.DiscountAmount != "" {
			amount := v.DiscountAmount
			variant.DiscountAmount = &amount
		}
		if v.DiscountPercent != "" {
			percent := v.DiscountPercent
			variant.DiscountPercent = &percent
		}
		if v.DiscountStartDate != nil {
			start := v.DiscountStartDate.Time
			variant.DiscountStartDate = &start
		}
		if v.DiscountEndDate != nil {
			end := v.DiscountEndDate.Time
			variant.DiscountEndDate = &end
		}

		variants = append(variants, variant)
	}

	return variants, nil
}

// persistAggregate writes the product, its variants and the business back-links in one
// transaction, so the database must be a replica set. Documents are tagged with a creation id
// and purged whenever the transaction reports failure, which also removes writes whose commit
// went through despite the error. A barcode clash on the unique index restarts the whole write
// with fresh barcodes.
func (s *ProductServiceImpl) persistAggregate(ctx context.Context, product domain.Product, variants []domain.ProductVariant) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.persistAggregate")
	defer span.End()

	product.CreationID = uuid.NewString()
	for i := range variants {
		variants[i].CreationID = product.CreationID
	}

	for attempt := 1; attempt <= maxBarcodeAttempts; attempt++ {
		barcodes, err := s.allocateBarcodes(ctx, len(variants))
		if err != nil {
			return domain.Product{}, err
		}
		for i := range variants {
			variants[i].Barcode = barcodes[i]
		}

		var created domain.Product
		err = s.productRepo.HandleTrx(ctx, func(sessCtx mongo.SessionContext) error {
			var trxErr error
			created, trxErr = s.writeAggregate(sessCtx, product, variants)
			return trxErr
		})
		if err == nil {
			return created, nil
		}

		if purgeErr := s.productRepo.DeleteProductByCreationID(ctx, product.Owner, product.CreationID); purgeErr != nil {
			log.Ctx(ctx).Error().Err(purgeErr).Str("component", "persistAggregate").
				Str("creation_id", product.CreationID).Msg("failed to purge partially created product")
		}

		if !errors.Is(err, errs.ErrDuplicateBarcode) {
			return domain.Product{}, err
		}

		log.Ctx(ctx).Warn().Str("component", "persistAggregate").Int("attempt", attempt).Msg("barcode collision, regenerating")
	}

	return domain.Product{}, errs.NewAppError(http.StatusConflict, "barcode", "Could not generate a unique barcode, please try again!")
}

func (s *ProductServiceImpl) writeAggregate(ctx context.Context, product domain.Product, variants []domain.ProductVariant) (domain.Product, error) {
	productID, err := s.productRepo.AddProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	product.ID = productID

	variantIDs := make([]primitive.ObjectID, 0, len(variants))
	for i, variant := range variants {
		variant.ProductID = productID

		variantID, err := s.productRepo.AddProductVariant(ctx, variant)
		if errors.Is(err, errs.ErrDuplicateSKU) {
			return domain.Product{}, skuAlreadyCreated(i, variant.SKU)
		}
		if err != nil {
			return domain.Product{}, err
		}

		variantIDs = append(variantIDs, variantID)
	}

	if err = s.productRepo.SetProductVariantIDs(ctx, productID, variantIDs); err != nil {
		return domain.Product{}, err
	}
	product.VariantsID = variantIDs

	for _, businessID := range product.Business {
		if err = s.productRepo.AddProductToBusiness(ctx, product.Owner, businessID, productID); err != nil {
			return domain.Product{}, err
		}
	}

	return product, nil
}

// allocateBarcodes returns n barcodes distinct from each other and, as far as a pre-check can
// tell, from every stored variant.
func (s *ProductServiceImpl) allocateBarcodes(ctx context.Context, n int) ([]string, error) {
	seen := make(map[string]struct{}, n)
	barcodes := make([]string, n)
	for i := range barcodes {
		barcodes[i] = s.nextBarcode(seen)
	}

	for round := 0; round < maxBarcodeAttempts; round++ {
		existing, err := s.productRepo.GetExistingBarcodes(ctx, barcodes)
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			break
		}

		for i, barcode := range barcodes {
			if _, taken := existing[barcode]; taken {
				barcodes[i] = s.nextBarcode(seen)
			}
		}
	}

	return barcodes, nil
}

func (s *ProductServiceImpl) nextBarcode(seen map[string]struct{}) string {
	barcode := s.generateBarcode()
	for tries := 0; tries < 100; tries++ {
		if _, dup := seen[barcode]; !dup {
			break
		}
		barcode = s.generateBarcode()
	}
	seen[barcode] = struct{}{}

	return barcode
}
