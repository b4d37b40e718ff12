package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanis004/WebServices/internal/store/domain"
	pkgkafka "github.com/yanis004/WebServices/pkg/kafka"
)

// Kafka topic constants for store domain events.
const (
	TopicProductCreated = "webstore.product.created"
	TopicOrderCreated   = "webstore.order.created"
	TopicReviewCreated  = "webstore.review.created"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeOrder   = "order"
	AggregateTypeReview  = "review"
)

// Source identifier for events originating from the store service.
const SourceStoreService = "store-service"

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	About string `json:"about"`
	Price string `json:"price"`
}

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
	Total      string   `json:"total"`
	Payment    bool     `json:"payment"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Score     int    `json:"score"`
}

// Producer publishes store domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the store service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:    product.ID,
		Name:  product.Name,
		About: product.About,
		Price: product.Price.StringFixed(2),
	}

	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceStoreService, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishOrderCreated publishes an order.created event with the full order snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		ID:         order.ID,
		UserID:     order.UserID,
		ProductIDs: order.ProductIDs,
		Total:      order.Total.StringFixed(2),
		Payment:    order.Payment,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceStoreService, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Score:     review.Score,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ID, AggregateTypeReview, SourceStoreService, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}
