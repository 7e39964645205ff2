package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ResourceCategory = "category"
	ResourceProduct  = "product"
)

const (
	EventCategoryCreated = "CATEGORY_CREATED"
	EventCategoryUpdated = "CATEGORY_UPDATED"
	EventCategoryDeleted = "CATEGORY_DELETED"
	EventProductCreated  = "PRODUCT_CREATED"
	EventProductUpdated  = "PRODUCT_UPDATED"
	EventProductDeleted  = "PRODUCT_DELETED"
)

// CatalogEvent is published to Kafka after every successful write.
// Payload carries the row after the change and is empty for deletions.
type CatalogEvent struct {
	EventID    uuid.UUID   `json:"event_id"`
	EventType  string      `json:"event_type"`
	Resource   string      `json:"resource"`
	ResourceID int64       `json:"resource_id"`
	Payload    interface{} `json:"payload,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

func NewCatalogEvent(eventType, resource string, id int64, payload interface{}) CatalogEvent {
	return CatalogEvent{
		EventID:    uuid.New(),
		EventType:  eventType,
		Resource:   resource,
		ResourceID: id,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
}
