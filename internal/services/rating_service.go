package services

import (
	"time"

	"unipool/internal/models"
	"unipool/internal/store"
	"unipool/internal/utils"
	apperrors "unipool/pkg/errors"
	"unipool/pkg/logger"
)

// RatingService maintains the per-user rating ledgers. A rater holds at most
// one entry per (subject, category); re-rating replaces the prior record.
type RatingService struct {
	store  store.Store
	logger *logger.Logger
	now    func() time.Time
}

func NewRatingService(st store.Store, log *logger.Logger) *RatingService {
	return &RatingService{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// SubmitRating records score and review from rater on the subject's ledger
// for the given category, replacing any earlier rating by the same rater.
func (s *RatingService) SubmitRating(subjectID, raterID string, category models.RatingCategory, score int, review string) (*models.User, error) {
	if raterID == "" {
		return nil, apperrors.NewValidationError("rater id is required")
	}
	if category != models.RatingCategoryDriver && category != models.RatingCategoryRider {
		return nil, apperrors.NewValidationError("category must be driver or rider")
	}
	if score < utils.MinRatingScore || score > utils.MaxRatingScore {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if len(review) > utils.MaxReviewLength {
		return nil, apperrors.NewValidationError("review must be at most 200 characters")
	}

	var updated models.User
	err := s.store.Update(func(snapshot *store.Snapshot) error {
		user := snapshot.FindUserByID(subjectID)
		if user == nil {
			return apperrors.NewNotFoundError("user " + subjectID + " not found")
		}

		entry := models.Rating{
			Score:     score,
			RaterID:   raterID,
			Review:    review,
			Timestamp: s.now(),
		}

		ledger := user.Ratings.ByCategory(category)
		replaced := false
		for i := range ledger {
			if ledger[i].RaterID == raterID {
				ledger[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			ledger = append(ledger, entry)
		}
		user.Ratings.SetCategory(category, ledger)

		updated = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(subjectID).WithFields(map[string]interface{}{
		"rater_id": raterID,
		"category": string(category),
		"score":    score,
	}).Info("Rating submitted")
	return &updated, nil
}

// GetUserRatings returns the subject's ledger for the category, empty when
// the user is unknown.
func (s *RatingService) GetUserRatings(userID string, category models.RatingCategory) []models.Rating {
	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for ratings lookup")
		return []models.Rating{}
	}

	user := snapshot.FindUserByID(userID)
	if user == nil {
		return []models.Rating{}
	}

	ledger := user.Ratings.ByCategory(category)
	if ledger == nil {
		return []models.Rating{}
	}
	return ledger
}

// GetAverageRating returns the ledger mean and the number of ratings behind
// it. A count of zero means "no ratings yet".
func (s *RatingService) GetAverageRating(userID string, category models.RatingCategory) (float64, int) {
	ledger := s.GetUserRatings(userID, category)
	if len(ledger) == 0 {
		return 0, 0
	}
	return ledgerMean(ledger), len(ledger)
}
