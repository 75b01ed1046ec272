package repository

import (
	"context"
	"strings"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection        = "products"
	productVariantsCollection = "product_variants"
	businessesCollection      = string(domain.ReferenceBusiness)

	skuIndexName     = "owner_sku_unique"
	barcodeIndexName = "barcode_unique"
)

// skuCollation makes "AbC-1" and "abc-1" the same SKU for both lookups and the unique index.
var skuCollation = &options.Collation{Locale: "en", Strength: 2}

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) MongoDBProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(productVariantsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "sku", Value: 1}},
			Options: options.Index().SetName(skuIndexName).SetUnique(true).SetCollation(skuCollation),
		},
		{
			Keys:    bson.D{{Key: "barcode", Value: 1}},
			Options: options.Index().SetName(barcodeIndexName).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "creation_id", Value: 1}},
		},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Msg("")
		return err
	}

	_, err = r.db.Collection(productsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "creation_id", Value: 1}},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Msg("")
		return err
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx mongo.SessionContext) (interface{}, error) {
		err := fn(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		}
		return nil, err
	})

	return err
}

func (r *MongoDBProductRepositoryImpl) IsSKUExists(ctx context.Context, owner primitive.ObjectID, sku string) (exists bool, err error) {
	filter := bson.D{{Key: "owner", Value: owner}, {Key: "sku", Value: sku}}
	opts := options.FindOne().SetCollation(skuCollation).SetProjection(bson.D{{Key: "_id", Value: 1}})

	err = r.db.Collection(productVariantsCollection).FindOne(ctx, filter, opts).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IsSKUExists").Msg("")
		return false, err
	}

	return true, nil
}

func (r *MongoDBProductRepositoryImpl) GetExistingBarcodes(ctx context.Context, barcodes []string) (existing map[string]struct{}, err error) {
	existing = make(map[string]struct{})
	if len(barcodes) == 0 {
		return existing, nil
	}

	filter := bson.M{"barcode": bson.M{"$in": barcodes}}
	opts := options.Find().SetProjection(bson.D{{Key: "barcode", Value: 1}})

	cursor, err := r.db.Collection(productVariantsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetExistingBarcodes").Msg("")
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Barcode string `bson:"barcode"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetExistingBarcodes").Msg("")
		return nil, err
	}

	for _, row := range rows {
		existing[row.Barcode] = struct{}{}
	}

	return existing, nil
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) AddProductVariant(ctx context.Context, data domain.ProductVariant) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection(productVariantsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProductVariant").Msg("")
		if mongo.IsDuplicateKeyError(err) {
			return id, classifyDuplicateKey(err)
		}
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) SetProductVariantIDs(ctx context.Context, productID primitive.ObjectID, variantIDs []primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: productID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "variantsId", Value: variantIDs},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetProductVariantIDs").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		log.Ctx(ctx).Error().Str("component", "SetProductVariantIDs").Msg("product not found")
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) AddProductToBusiness(ctx context.Context, owner primitive.ObjectID, businessID primitive.ObjectID, productID primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: businessID}, {Key: "owner", Value: owner}}
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "products", Value: productID}}}}

	_, err = r.db.Collection(businessesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProductToBusiness").Msg("")
		return
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProductByCreationID(ctx context.Context, owner primitive.ObjectID, creationID string) (err error) {
	filter := bson.D{{Key: "owner", Value: owner}, {Key: "creation_id", Value: creationID}}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductByCreationID").Msg("")
		return
	}

	var products []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &products); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductByCreationID").Msg("")
		return
	}

	if _, err = r.db.Collection(productVariantsCollection).DeleteMany(ctx, filter); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductByCreationID").Msg("")
		return
	}

	if len(products) == 0 {
		return nil
	}

	productIDs := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	_, err = r.db.Collection(businessesCollection).UpdateMany(ctx,
		bson.D{{Key: "owner", Value: owner}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "products", Value: bson.D{{Key: "$in", Value: productIDs}}}}}},
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductByCreationID").Msg("")
		return
	}

	if _, err = r.db.Collection(productsCollection).DeleteMany(ctx, filter); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductByCreationID").Msg("")
		return
	}

	return nil
}

func classifyDuplicateKey(err error) error {
	switch {
	case strings.Contains(err.Error(), skuIndexName):
		return errs.ErrDuplicateSKU
	case strings.Contains(err.Error(), barcodeIndexName):
		return errs.ErrDuplicateBarcode
	default:
		return errs.ErrConflict
	}
}
