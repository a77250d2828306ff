// Package booking implements the booking form validation rules and total
// price computation. Validation is a pure function of its inputs plus the
// static catalog; the first failing rule wins.
package booking

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"kzone-booking-backend/internal/catalog"
	"kzone-booking-backend/internal/models"
)

// StatusConfirmed is the status assigned to every accepted booking
const StatusConfirmed = "Confirmed"

// ValidationError is a user-facing booking form error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a booking request against the catalog. ExperienceID zero
// means no selection; guests arrives as the raw form string. On success it
// returns the selected experience and the parsed guest count.
func Validate(cat *catalog.Catalog, experienceID int, date, guests string) (models.Experience, int, *ValidationError) {
	if experienceID == 0 {
		return models.Experience{}, 0, &ValidationError{Message: "Please select an experience"}
	}
	exp, err := cat.Get(experienceID)
	if err != nil {
		return models.Experience{}, 0, &ValidationError{Message: "Please select an experience"}
	}
	if date == "" {
		return models.Experience{}, 0, &ValidationError{Message: "Please select a date"}
	}
	if guests == "" {
		return models.Experience{}, 0, &ValidationError{Message: "Please enter the number of guests"}
	}
	n, convErr := strconv.Atoi(guests)
	if convErr != nil || n < 1 {
		return models.Experience{}, 0, &ValidationError{Message: "Number of guests must be at least 1"}
	}
	if n > exp.MaxGuests {
		return models.Experience{}, 0, &ValidationError{
			Message: fmt.Sprintf("Maximum %d guests allowed for this experience", exp.MaxGuests),
		}
	}
	return exp, n, nil
}

// TotalPrice computes the booking total, exactly unit price times guests
func TotalPrice(exp models.Experience, guests int) float64 {
	return exp.Price * float64(guests)
}

// New builds a confirmed booking record for a validated request
func New(exp models.Experience, date string, guests int) models.Booking {
	return models.Booking{
		ID:             uuid.New().String(),
		ExperienceID:   exp.ID,
		ExperienceName: exp.Name,
		Date:           date,
		Guests:         guests,
		TotalPrice:     TotalPrice(exp, guests),
		Status:         StatusConfirmed,
		BookingDate:    time.Now(),
	}
}
