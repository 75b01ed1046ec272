package service

import (
	"context"
	"fmt"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// resolvedReferences holds the payload ids after they were confirmed to exist under the owner.
type resolvedReferences struct {
	business      []primitive.ObjectID
	category      primitive.ObjectID
	warehouse     *primitive.ObjectID
	brand         *primitive.ObjectID
	supplier      *primitive.ObjectID
	sizeGuard     *primitive.ObjectID
	images        []primitive.ObjectID
	video         []primitive.ObjectID
	variantImages []*primitive.ObjectID
}

type optionalReference struct {
	kind    domain.ReferenceKind
	value   string
	path    string
	message string
	target  **primitive.ObjectID
}

func (s *ProductServiceImpl) validateReferences(ctx context.Context, owner primitive.ObjectID, data dto.ProductRequest) (refs resolvedReferences, err error) {
	if len(data.Business) == 0 {
		return refs, errs.BadRequest("business", "One or more business is required!")
	}

	hasBusiness, err := s.referenceRepo.IsBusinessExistsForOwner(ctx, owner)
	if err != nil {
		return
	}
	if !hasBusiness {
		return refs, errs.NotFound("", "First business create then product create!")
	}

	refs.business, err = s.resolveBatch(ctx, data.Business,
		func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
			return s.referenceRepo.GetOwnedReferenceIDs(ctx, domain.ReferenceBusiness, owner, ids)
		},
		func(i int) error {
			return errs.NotFound(fmt.Sprintf("business/%d", i), "This %d index Business is not found!", i)
		})
	if err != nil {
		return
	}

	category, ok, err := s.resolveOne(ctx, domain.ReferenceCategory, owner, data.Category)
	if err != nil {
		return
	}
	if !ok {
		return refs, errs.NotFound("category", "This Category is not found!")
	}
	refs.category = category

	optionals := []optionalReference{
		{kind: domain.ReferenceWarehouse, value: data.Warehouse, path: "warehouse", message: "This Warehouse is not found!", target: &refs.warehouse},
		{kind: domain.ReferenceBrand, value: data.Brand, path: "brand", message: "This Brand is not found!", target: &refs.brand},
		{kind: domain.ReferenceSupplier, value: data.Supplier, path: "supplier", message: "This Supplier is not found!", target: &refs.supplier},
		{kind: domain.ReferenceSizeGuard, value: data.SizeGuard, path: "sizeGuard", message: "This Size Guard is not found!", target: &refs.sizeGuard},
	}
	for _, optional := range optionals {
		if optional.value == "" {
			continue
		}

		id, ok, lookupErr := s.resolveOne(ctx, optional.kind, owner, optional.value)
		if lookupErr != nil {
			return refs, lookupErr
		}
		if !ok {
			return refs, errs.NotFound(optional.path, "%s", optional.message)
		}
		*optional.target = &id
	}

	refs.images, err = s.resolveBatch(ctx, data.Images, s.ownedFiles(owner, domain.FileTypeImages),
		func(i int) error {
			return errs.NotFound("images", "This %d number Image is not found!", i+1)
		})
	if err != nil {
		return
	}

	refs.video, err = s.resolveBatch(ctx, data.Video, s.ownedFiles(owner, domain.FileTypeVideos),
		func(i int) error {
			return errs.NotFound("video", "This %d number Video is not found!", i+1)
		})
	if err != nil {
		return
	}

	refs.variantImages, err = s.resolveVariantImages(ctx, owner, data.Variants)
	return
}

func (s *ProductServiceImpl) ownedFiles(owner primitive.ObjectID, fileType domain.FileType) func(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	return func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
		return s.referenceRepo.GetOwnedFileIDs(ctx, owner, fileType, ids)
	}
}

// resolveOne reports a malformed id the same way as a missing one.
func (s *ProductServiceImpl) resolveOne(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, value string) (primitive.ObjectID, bool, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return id, false, nil
	}

	exists, err := s.referenceRepo.IsOwnedReferenceExists(ctx, kind, owner, id)
	if err != nil {
		return id, false, err
	}

	return id, exists, nil
}

// resolveBatch looks all ids up with a single query and reports the first missing or
// malformed id in payload order through missing.
func (s *ProductServiceImpl) resolveBatch(
	ctx context.Context,
	values []string,
	lookup func(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error),
	missing func(index int) error,
) ([]primitive.ObjectID, error) {
	if len(values) == 0 {
		return []primitive.ObjectID{}, nil
	}

	ids := make([]primitive.ObjectID, len(values))
	valid := make([]bool, len(values))
	query := make([]primitive.ObjectID, 0, len(values))
	for i, value := range values {
		id, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			continue
		}
		ids[i] = id
		valid[i] = true
		query = append(query, id)
	}

	found := map[primitive.ObjectID]struct{}{}
	if len(query) > 0 {
		var err error
		found, err = lookup(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	for i := range values {
		if !valid[i] {
			return nil, missing(i)
		}
		if _, ok := found[ids[i]]; !ok {
			return nil, missing(i)
		}
	}

	return ids, nil
}

func (s *ProductServiceImpl) resolveVariantImages(ctx context.Context, owner primitive.ObjectID, variants []dto.ProductVariantRequest) ([]*primitive.ObjectID, error) {
	images := make([]*primitive.ObjectID, len(variants))

	var values []string
	var indexes []int
	for i, variant := range variants {
		if variant.Image == "" {
			continue
		}
		values = append(values, variant.Image)
		indexes = append(indexes, i)
	}

	ids, err := s.resolveBatch(ctx, values, s.ownedFiles(owner, domain.FileTypeImages),
		func(i int) error {
			return errs.NotFound(variantPath(indexes[i], ""), "This %d number Image is not found!", indexes[i]+1)
		})
	if err != nil {
		return nil, err
	}

	for j, id := range ids {
		image := id
		images[indexes[j]] = &image
	}

	return images, nil
}
