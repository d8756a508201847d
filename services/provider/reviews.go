package provider

import (
	"context"
	"math"
	"strings"

	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
)

// ListReviews returns the provider's reviews with the average computed on read.
func (s *DefaultProviderService) ListReviews(ctx context.Context, providerID string) (*models.ReviewSummary, error) {
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, utils.NewBackendError(MsgReviewsFailed, err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &models.ReviewSummary{
		Reviews:       reviews,
		AverageRating: averageRating(reviews),
		Count:         len(reviews),
	}, nil
}

// CreateReview stores a review by the authenticated user. When a booking id is
// given it must be the author's booking with this provider.
func (s *DefaultProviderService) CreateReview(ctx context.Context, providerID string, author *models.User, req models.ReviewRequest) (*models.Review, error) {
	if author == nil {
		return nil, utils.UnauthorizedError{Message: "Authentication required"}
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.ValidationError{Message: MsgRatingRange}
	}
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}

	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID != "" && s.Bookings != nil {
		b, err := s.Bookings.Get(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if b.ProviderID != providerID || !strings.EqualFold(b.ClientEmail, author.Email) {
			return nil, utils.ForbiddenError{Message: MsgReviewBookingDenied}
		}
	}

	review := &models.Review{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		ProviderID:  providerID,
		ClientName:  author.Name,
		ClientEmail: author.Email,
		Rating:      req.Rating,
		Comment:     strings.TrimSpace(req.Comment),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		return nil, utils.NewBackendError(MsgReviewCreateFailed, err)
	}
	return review, nil
}

// averageRating is rounded to one decimal; zero for no reviews.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return math.Round(float64(total)/float64(len(reviews))*10) / 10
}
