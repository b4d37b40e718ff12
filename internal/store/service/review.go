package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/event"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
)

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo     repository.ReviewRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Score     int    `json:"score" validate:"required,min=1,max=5"`
	Content   string `json:"content" validate:"required,min=1"`
}

// UpdateReviewInput holds the parameters for a partial review update.
type UpdateReviewInput struct {
	Score   *int    `json:"score"`
	Content *string `json:"content"`
}

// CreateReview stores the review and folds it into the product aggregates.
func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	if !domain.ValidScore(input.Score) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("score must be between %d and %d", domain.MinScore, domain.MaxScore))
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Score:     input.Score,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("score", review.Score),
	)

	return review, nil
}

// GetReview retrieves a review by its ID.
func (s *ReviewService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review by id: %w", err)
	}
	return review, nil
}

// UpdateReview applies a partial update to a review. The product's score
// aggregate keeps the value recorded at creation.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, input UpdateReviewInput) (*domain.Review, error) {
	if input.Score == nil && input.Content == nil {
		return nil, apperrors.InvalidInput("at least one of score or content must be provided")
	}
	if input.Score != nil && !domain.ValidScore(*input.Score) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("score must be between %d and %d", domain.MinScore, domain.MaxScore))
	}

	review, err := s.repo.Update(ctx, id, repository.ReviewPatch{
		Score:   input.Score,
		Content: input.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.InfoContext(ctx, "review updated", slog.String("review_id", id))
	return review, nil
}

// DeleteReview removes a review by its ID.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.InfoContext(ctx, "review deleted", slog.String("review_id", id))
	return nil
}
