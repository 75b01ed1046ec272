package kafka

import (
	"context"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"github.com/segmentio/kafka-go"
)

// CreateKafkaProducer dials the leader of the configured product event partition.
func CreateKafkaProducer(ctx context.Context, config *config.Config) (*kafka.Conn, error) {
	conn, err := kafka.DialLeader(ctx, "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		return nil, err
	}

	return conn, nil
}
