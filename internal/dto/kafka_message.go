package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type ProductCreatedEvent struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Business    []string `json:"business"`
	Name        string   `json:"name"`
	TotalStock  int64    `json:"total_stock"`
	HasVariants bool     `json:"hasVariants"`
	VariantsID  []string `json:"variantsId"`
}
