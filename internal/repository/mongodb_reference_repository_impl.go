package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ownersCollection = "owners"
	filesCollection  = "files"
)

var idProjection = bson.D{{Key: "_id", Value: 1}}

type MongoDBReferenceRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBReferenceRepository(db *mongo.Database) MongoDBReferenceRepository {
	return &MongoDBReferenceRepositoryImpl{db: db}
}

func (r *MongoDBReferenceRepositoryImpl) GetOwnerByID(ctx context.Context, id primitive.ObjectID) (owner domain.Owner, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection(ownersCollection).FindOne(ctx, filter, options.FindOne().SetProjection(idProjection)).Decode(&owner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return owner, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetOwnerByID").Msg("")
		return owner, err
	}

	return owner, nil
}

func (r *MongoDBReferenceRepositoryImpl) IsBusinessExistsForOwner(ctx context.Context, owner primitive.ObjectID) (exists bool, err error) {
	filter := bson.D{{Key: "owner", Value: owner}}
	return r.exists(ctx, "IsBusinessExistsForOwner", string(domain.ReferenceBusiness), filter)
}

func (r *MongoDBReferenceRepositoryImpl) IsOwnedReferenceExists(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, id primitive.ObjectID) (exists bool, err error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}}
	return r.exists(ctx, "IsOwnedReferenceExists", string(kind), filter)
}

func (r *MongoDBReferenceRepositoryImpl) GetOwnedReferenceIDs(ctx context.Context, kind domain.ReferenceKind, owner primitive.ObjectID, ids []primitive.ObjectID) (found map[primitive.ObjectID]struct{}, err error) {
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}, {Key: "owner", Value: owner}}
	return r.findIDs(ctx, "GetOwnedReferenceIDs", string(kind), filter)
}

func (r *MongoDBReferenceRepositoryImpl) GetOwnedFileIDs(ctx context.Context, owner primitive.ObjectID, fileType domain.FileType, ids []primitive.ObjectID) (found map[primitive.ObjectID]struct{}, err error) {
	filter := bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		{Key: "owner", Value: owner},
		{Key: "fileType", Value: fileType},
	}
	return r.findIDs(ctx, "GetOwnedFileIDs", filesCollection, filter)
}

func (r *MongoDBReferenceRepositoryImpl) exists(ctx context.Context, component string, collection string, filter bson.D) (bool, error) {
	err := r.db.Collection(collection).FindOne(ctx, filter, options.FindOne().SetProjection(idProjection)).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Str("collection", collection).Msg("")
		return false, err
	}

	return true, nil
}

func (r *MongoDBReferenceRepositoryImpl) findIDs(ctx context.Context, component string, collection string, filter bson.D) (map[primitive.ObjectID]struct{}, error) {
	found := make(map[primitive.ObjectID]struct{})

	cursor, err := r.db.Collection(collection).Find(ctx, filter, options.Find().SetProjection(idProjection))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Str("collection", collection).Msg("")
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Str("collection", collection).Msg("")
		return nil, err
	}

	for _, row := range rows {
		found[row.ID] = struct{}{}
	}

	return found, nil
}
