package catalog

import (
	"fmt"
	"sync"
	"time"

	"kzone-booking-backend/internal/models"
)

// ErrNotFound is returned when an experience id is not in the catalog
var ErrNotFound = fmt.Errorf("experience not found")

// Catalog holds the static list of experiences offered by the venue.
// The list itself never changes at runtime; only reviews are appended,
// in memory, and are lost on restart.
type Catalog struct {
	mu          sync.RWMutex
	experiences []models.Experience
}

// New creates a catalog seeded with the venue's experiences
func New() *Catalog {
	return &Catalog{experiences: defaultExperiences()}
}

// List returns a snapshot of all experiences
func (c *Catalog) List() []models.Experience {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Experience, len(c.experiences))
	for i, exp := range c.experiences {
		out[i] = copyExperience(exp)
	}
	return out
}

// Get retrieves an experience by id
func (c *Catalog) Get(id int) (models.Experience, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, exp := range c.experiences {
		if exp.ID == id {
			return copyExperience(exp), nil
		}
	}
	return models.Experience{}, ErrNotFound
}

// AddReview appends a review to an experience and recomputes its aggregate
// rating as the mean over all reviews, the new one included
func (c *Catalog) AddReview(experienceID int, user, avatar string, rating int, comment string) (models.Review, error) {
	if rating < 1 || rating > 5 {
		return models.Review{}, fmt.Errorf("rating must be between 1 and 5")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.experiences {
		exp := &c.experiences[i]
		if exp.ID != experienceID {
			continue
		}

		review := models.Review{
			ID:      nextReviewID(exp.Reviews),
			User:    user,
			Avatar:  avatar,
			Rating:  rating,
			Comment: comment,
			Date:    time.Now().Format("2006-01-02"),
		}
		exp.Reviews = append(exp.Reviews, review)

		sum := 0
		for _, r := range exp.Reviews {
			sum += r.Rating
		}
		exp.Rating = float64(sum) / float64(len(exp.Reviews))

		return review, nil
	}
	return models.Review{}, ErrNotFound
}

func nextReviewID(reviews []models.Review) int {
	max := 0
	for _, r := range reviews {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

func copyExperience(exp models.Experience) models.Experience {
	out := exp
	out.Features = append([]string(nil), exp.Features...)
	out.Reviews = append([]models.Review(nil), exp.Reviews...)
	return out
}
