package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/risk"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotOwner         = apperror.New(http.StatusForbidden, "booking belongs to another user")
	ErrAlreadyFinalized = apperror.New(http.StatusConflict, "booking is already cancelled or completed")
	ErrNoRoomsAvailable = apperror.New(http.StatusConflict, "no rooms available for the requested room type")
	ErrNoAdults         = apperror.New(http.StatusBadRequest, "at least one adult is required")
	ErrNegativeCount    = apperror.New(http.StatusBadRequest, "counts must not be negative")
	ErrInvalidRiskLevel = apperror.New(http.StatusBadRequest, "invalid risk level filter")
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// terminal reports whether no further transition is permitted from s.
func terminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Booking is a stored stay request. The request fields are denormalized at
// creation time so the stored record matches what was scored.
type Booking struct {
	ID        string
	UserID    string
	UserEmail string
	UserName  *string

	RoomID   int64
	RoomType string

	Adults             int
	Children           int
	WeekendNights      int
	WeekNights         int
	MealPlan           string
	Parking            bool
	LeadTime           int
	ArrivalDate        time.Time
	MarketSegment      string
	RepeatedGuest      bool
	PriorCancellations int
	PriorCompleted     int
	AvgPricePerRoom    float64
	SpecialRequests    int

	// CancellationPrediction is nil only for rows predating the
	// classifier; every new booking stores a probability.
	CancellationPrediction *float64

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RiskLevel derives the display tier from the stored probability.
func (b *Booking) RiskLevel() risk.Level {
	return risk.ClassifyProbability(b.CancellationPrediction)
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID    string
	Status    string
	RiskLevel string // one of risk.Level values; empty for all
	Page      int
	PageSize  int
}

// Stats aggregates bookings for the operator dashboard.
type Stats struct {
	StatusCounts   map[Status]int
	HighRiskActive int
	RoomTypeCounts map[string]int
	MonthlyCounts  map[int]int // arrival month (1-12) -> bookings
}
