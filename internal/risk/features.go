package risk

import "errors"

// VectorLen is the number of elements in an encoded feature vector. The
// deployed classifier was trained against exactly this many columns, in the
// order produced by Encode; changing either silently corrupts predictions.
const VectorLen = 19

var ErrNegativeCount = errors.New("counts must not be negative")

// Category tables. Indices are zero-based positions in the training
// enumeration and must stay frozen for the lifetime of a deployed model.
var (
	mealPlans      = []string{"Meal Plan 1", "Meal Plan 2", "Meal Plan 3", "Not Selected"}
	roomTypes      = []string{"Room Type 1", "Room Type 2", "Room Type 3", "Room Type 4", "Room Type 5", "Room Type 6", "Room Type 7"}
	marketSegments = []string{"Aviation", "Complementary", "Corporate", "Offline", "Online"}
)

// Default indices for values outside the training enumeration. Unknown
// categories are mapped, not rejected, so encoding never fails on them.
const (
	defaultMealPlanIndex      = 3 // "Not Selected"
	defaultRoomTypeIndex      = 0 // "Room Type 1"
	defaultMarketSegmentIndex = 4 // "Online"
)

// Features holds the raw booking attributes consumed by the encoder.
type Features struct {
	Adults        int
	Children      int
	WeekendNights int
	WeekNights    int
	MealPlan      string
	Parking       bool
	RoomType      string
	LeadTime      int
	ArrivalYear   int
	ArrivalMonth  int
	ArrivalDay    int
	MarketSegment string
	RepeatedGuest bool
	// Historical counts for this guest at the time of booking.
	PriorCancellations int
	PriorCompleted     int
	AvgPricePerRoom    float64
	SpecialRequests    int
}

// MealPlanIndex maps a meal plan label to its training index.
func MealPlanIndex(label string) int {
	return indexOf(mealPlans, label, defaultMealPlanIndex)
}

// RoomTypeIndex maps a room type label to its training index.
func RoomTypeIndex(label string) int {
	return indexOf(roomTypes, label, defaultRoomTypeIndex)
}

// MarketSegmentIndex maps a market segment label to its training index.
func MarketSegmentIndex(label string) int {
	return indexOf(marketSegments, label, defaultMarketSegmentIndex)
}

func indexOf(table []string, label string, fallback int) int {
	for i, v := range table {
		if v == label {
			return i
		}
	}
	return fallback
}

// Encode maps booking features onto the fixed-order numeric vector the
// classifier expects. The two trailing elements are derived: total occupants
// (adults + children) and total nights (weekend + week).
func Encode(f Features) ([]float64, error) {
	if f.Adults < 0 || f.Children < 0 || f.WeekendNights < 0 || f.WeekNights < 0 ||
		f.LeadTime < 0 || f.PriorCancellations < 0 || f.PriorCompleted < 0 ||
		f.SpecialRequests < 0 {
		return nil, ErrNegativeCount
	}

	vec := []float64{
		float64(f.Adults),
		float64(f.Children),
		float64(f.WeekendNights),
		float64(f.WeekNights),
		float64(MealPlanIndex(f.MealPlan)),
		boolToFloat(f.Parking),
		float64(RoomTypeIndex(f.RoomType)),
		float64(f.LeadTime),
		float64(f.ArrivalYear),
		float64(f.ArrivalMonth),
		float64(f.ArrivalDay),
		float64(MarketSegmentIndex(f.MarketSegment)),
		boolToFloat(f.RepeatedGuest),
		float64(f.PriorCancellations),
		float64(f.PriorCompleted),
		f.AvgPricePerRoom,
		float64(f.SpecialRequests),
		float64(f.Adults + f.Children),
		float64(f.WeekendNights + f.WeekNights),
	}

	return vec, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
