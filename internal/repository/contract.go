package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBProductRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx mongo.SessionContext) error) error
	EnsureIndexes(ctx context.Context) error
	IsSKUExists(ctx context.Context, owner primitive.ObjectID, sku string) (exists bool, err error)
	GetExistingBarcodes(ctx context.Context, barcodes []string) (existing map[string]struct{}, err error)
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	AddProductVariant(ctx context.Context, data domain.ProductVariant) (id primitive.ObjectID, err error)
	SetProductVariantIDs(ctx context.Context, productID primitive.ObjectID, variantIDs []primitive.ObjectID) (err error)
	AddProductToBusiness(ctx context.Context, owner primitive.ObjectID, businessID primitive.ObjectID, productID primitive.ObjectID) (err error)
	DeleteProductByCreationID(ctx context.Context, owner primitive.ObjectID, creationID string) (err error)
}

// MongoDBReferenceRepository answers existence and ownership questions about documents a
// product refers to. Lookups project only _id.
type MongoDBReferenceRepository interface {
	GetOwnerByID(ctx context.Context, id primitive.ObjectID) (owner domain.Owner, err error)
	IsBusinessExistsForOwner(ctx context.Context, owner primitive.ObjectID) (exists bool, err error)
	IsOwnedReferenceExists(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, id primitive.ObjectID) (exists bool, err error)
	GetOwnedReferenceIDs(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, ids []primitive.ObjectID) (found map[primitive.ObjectID]struct{}, err error)
	GetOwnedFileIDs(ctx context.Context, owner primitive.ObjectID, fileType domain.FileType, ids []primitive.ObjectID) (found map[primitive.ObjectID]struct{}, err error)
}
