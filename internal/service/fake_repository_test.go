package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeCatalog is an in-memory stand-in for both repositories. HandleTrx restores the
// snapshot taken before fn when fn fails.
type fakeCatalog struct {
	mu sync.Mutex

	owners     map[primitive.ObjectID]struct{}
	references map[domain.ReferenceKind]map[primitive.ObjectID]primitive.ObjectID
	files      map[primitive.ObjectID]domain.File

	products         map[primitive.ObjectID]domain.Product
	variants         map[primitive.ObjectID]domain.ProductVariant
	businessProducts map[primitive.ObjectID][]primitive.ObjectID

	// failBarcodeInserts rejects that many variant inserts with a barcode clash.
	failBarcodeInserts int
	// hideSKUs makes IsSKUExists blind so the unique index is the only guard.
	hideSKUs       bool
	failBusinessOn bool
	// commitUnknown keeps the writes of a successful fn but still reports a failed commit.
	commitUnknown bool
	purges        int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		owners:           map[primitive.ObjectID]struct{}{},
		references:       map[domain.ReferenceKind]map[primitive.ObjectID]primitive.ObjectID{},
		files:            map[primitive.ObjectID]domain.File{},
		products:         map[primitive.ObjectID]domain.Product{},
		variants:         map[primitive.ObjectID]domain.ProductVariant{},
		businessProducts: map[primitive.ObjectID][]primitive.ObjectID{},
	}
}

func (f *fakeCatalog) addOwner() primitive.ObjectID {
	id := primitive.NewObjectID()
	f.owners[id] = struct{}{}
	return id
}

func (f *fakeCatalog) addReference(kind domain.ReferenceKind, owner primitive.ObjectID) primitive.ObjectID {
	id := primitive.NewObjectID()
	if f.references[kind] == nil {
		f.references[kind] = map[primitive.ObjectID]primitive.ObjectID{}
	}
	f.references[kind][id] = owner
	return id
}

func (f *fakeCatalog) addFile(owner primitive.ObjectID, fileType domain.FileType) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.files[id] = domain.File{ID: id, Owner: owner, FileType: fileType}
	return id
}

func (f *fakeCatalog) addVariant(variant domain.ProductVariant) {
	variant.ID = primitive.NewObjectID()
	f.variants[variant.ID] = variant
}

func (f *fakeCatalog) HandleTrx(ctx context.Context, fn func(ctx mongo.SessionContext) error) error {
	f.mu.Lock()
	products := copyMap(f.products)
	variants := copyMap(f.variants)
	links := map[primitive.ObjectID][]primitive.ObjectID{}
	for id, ids := range f.businessProducts {
		links[id] = append([]primitive.ObjectID(nil), ids...)
	}
	f.mu.Unlock()

	if err := fn(mongo.NewSessionContext(ctx, nil)); err != nil {
		f.mu.Lock()
		f.products, f.variants, f.businessProducts = products, variants, links
		f.mu.Unlock()
		return err
	}

	if f.commitUnknown {
		return errors.New("commit outcome unknown")
	}

	return nil
}

func (f *fakeCatalog) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (f *fakeCatalog) IsSKUExists(ctx context.Context, owner primitive.ObjectID, sku string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hideSKUs {
		return false, nil
	}

	return f.skuTaken(owner, sku), nil
}

func (f *fakeCatalog) skuTaken(owner primitive.ObjectID, sku string) bool {
	for _, variant := range f.variants {
		if variant.Owner == owner && strings.EqualFold(variant.SKU, sku) {
			return true
		}
	}

	return false
}

func (f *fakeCatalog) GetExistingBarcodes(ctx context.Context, barcodes []string) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := map[string]struct{}{}
	for _, barcode := range barcodes {
		wanted[barcode] = struct{}{}
	}

	existing := map[string]struct{}{}
	for _, variant := range f.variants {
		if _, ok := wanted[variant.Barcode]; ok {
			existing[variant.Barcode] = struct{}{}
		}
	}

	return existing, nil
}

func (f *fakeCatalog) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data.ID = primitive.NewObjectID()
	f.products[data.ID] = data

	return data.ID, nil
}

func (f *fakeCatalog) AddProductVariant(ctx context.Context, data domain.ProductVariant) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failBarcodeInserts > 0 {
		f.failBarcodeInserts--
		return primitive.NilObjectID, errs.ErrDuplicateBarcode
	}

	if f.skuTaken(data.Owner, data.SKU) {
		return primitive.NilObjectID, errs.ErrDuplicateSKU
	}

	for _, variant := range f.variants {
		if variant.Barcode == data.Barcode {
			return primitive.NilObjectID, errs.ErrDuplicateBarcode
		}
	}

	data.ID = primitive.NewObjectID()
	f.variants[data.ID] = data

	return data.ID, nil
}

func (f *fakeCatalog) SetProductVariantIDs(ctx context.Context, productID primitive.ObjectID, variantIDs []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, ok := f.products[productID]
	if !ok {
		return errs.ErrNotFound
	}
	product.VariantsID = variantIDs
	f.products[productID] = product

	return nil
}

func (f *fakeCatalog) AddProductToBusiness(ctx context.Context, owner primitive.ObjectID, businessID primitive.ObjectID, productID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failBusinessOn {
		return errors.New("business update failed")
	}

	for _, id := range f.businessProducts[businessID] {
		if id == productID {
			return nil
		}
	}
	f.businessProducts[businessID] = append(f.businessProducts[businessID], productID)

	return nil
}

func (f *fakeCatalog) DeleteProductByCreationID(ctx context.Context, owner primitive.ObjectID, creationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.purges++

	for id, variant := range f.variants {
		if variant.Owner == owner && variant.CreationID == creationID {
			delete(f.variants, id)
		}
	}

	for id, product := range f.products {
		if product.Owner != owner || product.CreationID != creationID {
			continue
		}
		for businessID, ids := range f.businessProducts {
			kept := ids[:0]
			for _, linked := range ids {
				if linked != id {
					kept = append(kept, linked)
				}
			}
			f.businessProducts[businessID] = kept
		}
		delete(f.products, id)
	}

	return nil
}

func (f *fakeCatalog) GetOwnerByID(ctx context.Context, id primitive.ObjectID) (domain.Owner, error) {
	if _, ok := f.owners[id]; !ok {
		return domain.Owner{}, errs.ErrNotFound
	}

	return domain.Owner{ID: id}, nil
}

func (f *fakeCatalog) IsBusinessExistsForOwner(ctx context.Context, owner primitive.ObjectID) (bool, error) {
	for _, businessOwner := range f.references[domain.ReferenceBusiness] {
		if businessOwner == owner {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeCatalog) IsOwnedReferenceExists(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, id primitive.ObjectID) (bool, error) {
	refOwner, ok := f.references[kind][id]
	return ok && refOwner == owner, nil
}

func (f *fakeCatalog) GetOwnedReferenceIDs(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	found := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if refOwner, ok := f.references[kind][id]; ok && refOwner == owner {
			found[id] = struct{}{}
		}
	}

	return found, nil
}

func (f *fakeCatalog) GetOwnedFileIDs(ctx context.Context, owner primitive.ObjectID, fileType domain.FileType, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	found := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if file, ok := f.files[id]; ok && file.Owner == owner && file.FileType == fileType {
			found[id] = struct{}{}
		}
	}

	return found, nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

type fakeProducer struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (p *fakeProducer) WriteMessages(msgs ...kafka.Message) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return 0, p.err
	}
	p.messages = append(p.messages, msgs...)

	return len(msgs), nil
}
