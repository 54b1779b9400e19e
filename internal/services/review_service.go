package services

import (
	"fmt"

	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
)

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// SubmitReview validates and stores a review for an existing product.
// Nothing prevents a customer from reviewing the same product twice; no
// uniqueness rule exists for (product, author).
func (s *ReviewService) SubmitReview(review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", review.Rating)
	}
	if _, err := s.productRepo.GetByID(review.ProductID); err != nil {
		return fmt.Errorf("cannot review product %s: %w", review.ProductID, err)
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetProductReviews retrieves the reviews of one product, newest first.
func (s *ReviewService) GetProductReviews(productID string) ([]models.Review, error) {
	return s.reviewRepo.GetByProductID(productID)
}

// GetRatingSummary computes the review count and average rating of a product.
func (s *ReviewService) GetRatingSummary(productID string) (*models.RatingSummary, error) {
	reviews, err := s.reviewRepo.GetByProductID(productID)
	if err != nil {
		return nil, err
	}

	summary := &models.RatingSummary{ProductID: productID, ReviewCount: len(reviews)}
	if len(reviews) == 0 {
		return summary, nil
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	summary.AverageRating = float64(total) / float64(len(reviews))
	return summary, nil
}

// MarkHelpful records a helpful vote on a review.
func (s *ReviewService) MarkHelpful(reviewID string) error {
	return s.reviewRepo.IncrementHelpful(reviewID)
}
