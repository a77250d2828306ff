package models

import "time"

// Review represents a guest review left on an experience
type Review struct {
	ID      int    `json:"id"`
	User    string `json:"user"`
	Avatar  string `json:"avatar,omitempty"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// Experience represents a bookable themed activity offered by the venue
type Experience struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration"`
	MaxGuests   int      `json:"max_guests"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Features    []string `json:"features"`
	Rating      float64  `json:"rating"`
	Reviews     []Review `json:"reviews"`
}

// Booking represents a confirmed booking in a session's history
type Booking struct {
	ID             string    `json:"id"`
	ExperienceID   int       `json:"experience_id"`
	ExperienceName string    `json:"experience_name"`
	Date           string    `json:"date"`
	Guests         int       `json:"guests"`
	TotalPrice     float64   `json:"total_price"`
	Status         string    `json:"status"`
	BookingDate    time.Time `json:"booking_date"`
}

// UserProfile represents a user's profile record.
// Identity fields (UID, Email, DisplayName, PhotoURL) are authoritative on the
// identity provider; the extended fields live in the document store.
type UserProfile struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	PushToken   *string   `json:"push_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdate carries the fields a user may change on their profile.
// Nil means "leave unchanged".
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}
