package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

func BuildURI(conf config.MongoDBConfig) string {
	return fmt.Sprintf("mongodb://%s:%s", conf.DBHost, conf.DBPort)
}

// ClientOptions traces every command through the global otel tracer provider.
func ClientOptions(conf config.MongoDBConfig) *options.ClientOptions {
	clientOptions := options.Client().
		ApplyURI(BuildURI(conf)).
		SetConnectTimeout(10 * time.Second).
		SetMonitor(otelmongo.NewMonitor())

	if conf.DBReplicaSet != "" {
		clientOptions.SetReplicaSet(conf.DBReplicaSet)
	}

	return clientOptions
}

// ConnectToMongoDB opens a client for the catalog database. Product creation runs in
// multi-document transactions, so production deployments must point at a replica set.
func ConnectToMongoDB(ctx context.Context, conf config.MongoDBConfig) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, ClientOptions(conf))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return client.Database(conf.DBName), nil
}
