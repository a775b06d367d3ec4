package http

import (
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=Active Cancelled Completed"`
	RiskLevel string `form:"risk_level" binding:"omitempty,oneof=High Medium Low Unknown"`
}

type CreateBookingRequest struct {
	Adults          int    `json:"no_of_adults" binding:"required,min=1"`
	Children        int    `json:"no_of_children" binding:"omitempty,min=0"`
	WeekendNights   int    `json:"no_of_weekend_nights" binding:"omitempty,min=0"`
	WeekNights      int    `json:"no_of_week_nights" binding:"omitempty,min=0"`
	MealPlan        string `json:"type_of_meal_plan"`
	Parking         bool   `json:"required_car_parking_space"`
	RoomType        string `json:"room_type_reserved" binding:"required"`
	LeadTime        int    `json:"lead_time" binding:"omitempty,min=0"`
	ArrivalYear     int    `json:"arrival_year" binding:"required"`
	ArrivalMonth    int    `json:"arrival_month" binding:"required,min=1,max=12"`
	ArrivalDay      int    `json:"arrival_date" binding:"required,min=1,max=31"`
	MarketSegment   string `json:"market_segment_type"`
	SpecialRequests int    `json:"no_of_special_requests" binding:"omitempty,min=0"`
}

type UserTag struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

type RoomTag struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	User            UserTag   `json:"user"`
	Room            RoomTag   `json:"room"`
	Adults          int       `json:"no_of_adults"`
	Children        int       `json:"no_of_children"`
	WeekendNights   int       `json:"no_of_weekend_nights"`
	WeekNights      int       `json:"no_of_week_nights"`
	MealPlan        string    `json:"type_of_meal_plan"`
	Parking         bool      `json:"required_car_parking_space"`
	LeadTime        int       `json:"lead_time"`
	ArrivalDate     string    `json:"arrival_date"`
	MarketSegment   string    `json:"market_segment_type"`
	RepeatedGuest   bool      `json:"repeated_guest"`
	AvgPricePerRoom float64   `json:"avg_price_per_room"`
	SpecialRequests int       `json:"no_of_special_requests"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Risk fields are populated only for operators.
	CancellationPrediction *float64 `json:"cancellation_prediction,omitempty"`
	RiskLevel              string   `json:"risk_level,omitempty"`
}

// NewBookingResponse maps a booking onto the wire. The risk assessment is
// operator-facing and omitted from guest responses.
func NewBookingResponse(b *booking.Booking, includeRisk bool) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		User:            UserTag{ID: b.UserID, Email: b.UserEmail, Name: b.UserName},
		Room:            RoomTag{ID: b.RoomID, Type: b.RoomType},
		Adults:          b.Adults,
		Children:        b.Children,
		WeekendNights:   b.WeekendNights,
		WeekNights:      b.WeekNights,
		MealPlan:        b.MealPlan,
		Parking:         b.Parking,
		LeadTime:        b.LeadTime,
		ArrivalDate:     b.ArrivalDate.Format("2006-01-02"),
		MarketSegment:   b.MarketSegment,
		RepeatedGuest:   b.RepeatedGuest,
		AvgPricePerRoom: b.AvgPricePerRoom,
		SpecialRequests: b.SpecialRequests,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if includeRisk {
		resp.CancellationPrediction = b.CancellationPrediction
		resp.RiskLevel = string(b.RiskLevel())
	}

	return resp
}

type StatsResponse struct {
	StatusCounts   map[string]int `json:"status_counts"`
	HighRiskActive int            `json:"high_risk_active"`
	RoomTypeCounts map[string]int `json:"room_type_counts"`
	MonthlyCounts  map[int]int    `json:"monthly_counts"`
}

func NewStatsResponse(s *booking.Stats) StatsResponse {
	statusCounts := make(map[string]int, len(s.StatusCounts))
	for status, count := range s.StatusCounts {
		statusCounts[string(status)] = count
	}
	return StatsResponse{
		StatusCounts:   statusCounts,
		HighRiskActive: s.HighRiskActive,
		RoomTypeCounts: s.RoomTypeCounts,
		MonthlyCounts:  s.MonthlyCounts,
	}
}
