package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ReferenceKind names a collection a product may point to. Every document in these
// collections carries an "owner" field.
type ReferenceKind string

const (
	ReferenceBusiness  ReferenceKind = "businesses"
	ReferenceCategory  ReferenceKind = "categories"
	ReferenceWarehouse ReferenceKind = "warehouses"
	ReferenceBrand     ReferenceKind = "brands"
	ReferenceSupplier  ReferenceKind = "suppliers"
	ReferenceSizeGuard ReferenceKind = "size_guards"
)

type FileType string

const (
	FileTypeImages FileType = "images"
	FileTypeVideos FileType = "videos"
)

type Owner struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
}

type Business struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Owner    primitive.ObjectID   `bson:"owner" json:"owner"`
	Products []primitive.ObjectID `bson:"products" json:"products"`
}

type File struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner    primitive.ObjectID `bson:"owner" json:"owner"`
	FileType FileType           `bson:"fileType" json:"fileType"`
}
