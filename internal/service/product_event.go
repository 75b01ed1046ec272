package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/metrics"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const eventProductCreated = "product_created"

// publishProductCreated notifies downstream services about a stored product. The product is
// already committed at this point, so failures are only logged and counted.
func (s *ProductServiceImpl) publishProductCreated(ctx context.Context, product domain.Product) {
	if s.kafkaProducer == nil {
		return
	}

	ctx, span := s.tracer.Start(ctx, "ProductService.publishProductCreated")
	defer span.End()

	kafkaMsg := dto.KafkaMessage{
		EventType: eventProductCreated,
		Data:      productCreatedEvent(product),
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishProductCreated").Msg("")
		metrics.ObserveEventPublishFailure()
		return
	}

	for i := 0; i < maxPublishRetries; i++ {
		_, err = s.breaker.Execute(func() ([]byte, error) {
			return nil, s.writeKafkaMessage(product.ID.Hex(), jsonMsg)
		})
		if err == nil {
			return
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "publishProductCreated").
			Int("attempt", i+1).Int("max_attempts", maxPublishRetries).Msg("failed to write kafka message")

		if i < maxPublishRetries-1 {
			time.Sleep(s.publishBackoff * time.Duration(i+1))
		}
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishProductCreated").
		Str("product_id", product.ID.Hex()).Msg("giving up on product_created event")
	metrics.ObserveEventPublishFailure()
}

func (s *ProductServiceImpl) writeKafkaMessage(key string, msg []byte) error {
	_, err := s.kafkaProducer.WriteMessages(
		kafka.Message{
			Key:   []byte(key),
			Value: msg,
		},
	)
	return err
}

func productCreatedEvent(product domain.Product) dto.ProductCreatedEvent {
	business := make([]string, 0, len(product.Business))
	for _, id := range product.Business {
		business = append(business, id.Hex())
	}

	variants := make([]string, 0, len(product.VariantsID))
	for _, id := range product.VariantsID {
		variants = append(variants, id.Hex())
	}

	return dto.ProductCreatedEvent{
		ID:          product.ID.Hex(),
		Owner:       product.Owner.Hex(),
		Business:    business,
		Name:        product.Name,
		TotalStock:  product.TotalStock,
		HasVariants: product.HasVariants,
		VariantsID:  variants,
	}
}
