package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfig(t *testing.T) {
	t.Setenv("SERVICE_PORT", "8081")
	t.Setenv("DB_HOST", "mongo")
	t.Setenv("DB_PORT", "27017")
	t.Setenv("DB_NAME", "")
	t.Setenv("BROKER_PARTITION", "2")
	t.Setenv("JWT_SECRET", "secret")

	conf := CreateNewConfig()

	assert.Equal(t, "8081", conf.ServicePort)
	assert.Equal(t, "mongo", conf.MongoDBConfig.DBHost)
	assert.Equal(t, "catalog_service", conf.MongoDBConfig.DBName)
	assert.Equal(t, 2, conf.KafkaConfig.BrokerPartition)
	assert.Equal(t, "secret", conf.JWTSecret)
}

func TestCreateNewConfigMalformedPartition(t *testing.T) {
	t.Setenv("BROKER_PARTITION", "first")

	conf := CreateNewConfig()

	assert.Zero(t, conf.KafkaConfig.BrokerPartition)
}
