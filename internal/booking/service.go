package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/history"
	"github.com/nekogravitycat/hotel-booking-backend/internal/risk"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

// CreateRequest carries the raw stay request as submitted by the guest.
type CreateRequest struct {
	UserID          string
	Adults          int
	Children        int
	WeekendNights   int
	WeekNights      int
	MealPlan        string
	Parking         bool
	RoomType        string
	LeadTime        int
	ArrivalYear     int
	ArrivalMonth    int
	ArrivalDay      int
	MarketSegment   string
	SpecialRequests int
}

type Service interface {
	// Create validates the request, reserves inventory, scores the
	// cancellation risk and persists the booking as Active. Inventory is
	// reserved before the insert; a failed insert releases the unit.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)

	// List returns a page of bookings. A store failure degrades to an
	// empty page rather than an error so the listing surface stays up.
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel transitions the booking to Cancelled, releases its inventory
	// unit and records the cancellation. Only the owner or an operator
	// may cancel; concurrent cancels resolve to exactly one winner.
	Cancel(ctx context.Context, id, requesterID string, isOperator bool) error

	// Complete marks a finished stay. Operator only.
	Complete(ctx context.Context, id string) error

	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo      Repository
	rooms     room.Service
	historyDB history.Repository
	scorer    *risk.Scorer
}

func NewService(repo Repository, rooms room.Service, historyDB history.Repository, scorer *risk.Scorer) Service {
	return &service{
		repo:      repo,
		rooms:     rooms,
		historyDB: historyDB,
		scorer:    scorer,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.Adults < 1 {
		return nil, ErrNoAdults
	}
	if req.Children < 0 || req.WeekendNights < 0 || req.WeekNights < 0 ||
		req.LeadTime < 0 || req.SpecialRequests < 0 {
		return nil, ErrNegativeCount
	}

	arrival := resolveArrivalDate(req.ArrivalYear, req.ArrivalMonth, req.ArrivalDay)

	// Guest history feeds the classifier. A read failure here must not
	// block the booking, so the counts degrade to zero.
	priorCancelled, err := s.repo.CountByUserAndStatus(ctx, req.UserID, StatusCancelled)
	if err != nil {
		log.Printf("booking: count cancelled bookings for user %s failed, assuming 0: %v", req.UserID, err)
		priorCancelled = 0
	}
	priorCompleted, err := s.repo.CountByUserAndStatus(ctx, req.UserID, StatusCompleted)
	if err != nil {
		log.Printf("booking: count completed bookings for user %s failed, assuming 0: %v", req.UserID, err)
		priorCompleted = 0
	}

	reserved, err := s.rooms.Reserve(ctx, req.RoomType)
	if err != nil {
		if errors.Is(err, room.ErrNoRoomsAvailable) {
			return nil, ErrNoRoomsAvailable
		}
		return nil, err
	}

	assessment := s.score(risk.Features{
		Adults:             req.Adults,
		Children:           req.Children,
		WeekendNights:      req.WeekendNights,
		WeekNights:         req.WeekNights,
		MealPlan:           req.MealPlan,
		Parking:            req.Parking,
		RoomType:           req.RoomType,
		LeadTime:           req.LeadTime,
		ArrivalYear:        arrival.Year(),
		ArrivalMonth:       int(arrival.Month()),
		ArrivalDay:         arrival.Day(),
		MarketSegment:      req.MarketSegment,
		RepeatedGuest:      priorCompleted > 0,
		PriorCancellations: priorCancelled,
		PriorCompleted:     priorCompleted,
		AvgPricePerRoom:    reserved.Price,
		SpecialRequests:    req.SpecialRequests,
	})

	b := &Booking{
		UserID:                 req.UserID,
		RoomID:                 reserved.ID,
		RoomType:               reserved.RoomType,
		Adults:                 req.Adults,
		Children:               req.Children,
		WeekendNights:          req.WeekendNights,
		WeekNights:             req.WeekNights,
		MealPlan:               req.MealPlan,
		Parking:                req.Parking,
		LeadTime:               req.LeadTime,
		ArrivalDate:            arrival,
		MarketSegment:          req.MarketSegment,
		RepeatedGuest:          priorCompleted > 0,
		PriorCancellations:     priorCancelled,
		PriorCompleted:         priorCompleted,
		AvgPricePerRoom:        reserved.Price,
		SpecialRequests:        req.SpecialRequests,
		CancellationPrediction: &assessment.Probability,
		Status:                 StatusActive,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		// The unit was already taken; give it back so the ledger stays
		// consistent with the bookings that actually exist.
		if relErr := s.rooms.Release(ctx, reserved.ID); relErr != nil {
			log.Printf("booking: release room %d after failed insert failed: %v", reserved.ID, relErr)
		}
		return nil, err
	}

	return b, nil
}

// score encodes and scores the features, degrading to the neutral
// assessment when encoding fails.
func (s *service) score(f risk.Features) risk.Assessment {
	vec, err := risk.Encode(f)
	if err != nil {
		log.Printf("booking: encode features failed, using default assessment: %v", err)
		return risk.Assessment{Probability: risk.DefaultProbability, Degraded: true}
	}
	assessment := s.scorer.Score(vec)
	if assessment.Degraded {
		log.Printf("booking: risk scoring degraded, stored probability %.2f", assessment.Probability)
	}
	return assessment
}

// resolveArrivalDate validates the submitted calendar date. An invalid
// date (e.g. February 30) is replaced with today rather than rejected,
// matching the upstream intake behavior; the substitution is logged.
func resolveArrivalDate(year, month, day int) time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		log.Printf("booking: invalid arrival date %04d-%02d-%02d, substituting today", year, month, day)
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.RiskLevel != "" && !risk.ValidLevel(filter.RiskLevel) {
		return nil, 0, ErrInvalidRiskLevel
	}

	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Printf("booking: list failed, returning empty page: %v", err)
		return []*Booking{}, 0, nil
	}
	return bookings, total, nil
}

func (s *service) Cancel(ctx context.Context, id, requesterID string, isOperator bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isOperator && b.UserID != requesterID {
		return ErrNotOwner
	}
	if terminal(b.Status) {
		return ErrAlreadyFinalized
	}

	// The read above can race another cancel; the conditional update is
	// what actually serializes the transition.
	ok, err := s.repo.UpdateStatusIf(ctx, id, StatusActive, StatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyFinalized
	}

	// Exactly one release per cancellation: the conditional update above
	// guarantees only one caller reaches this point.
	if err := s.rooms.Release(ctx, b.RoomID); err != nil {
		log.Printf("booking: release room %d for cancelled booking %s failed: %v", b.RoomID, id, err)
	}

	rec := &history.CancellationRecord{UserID: b.UserID, BookingID: b.ID}
	if err := s.historyDB.Create(ctx, rec); err != nil {
		log.Printf("booking: record cancellation of booking %s failed: %v", id, err)
	}

	return nil
}

func (s *service) Complete(ctx context.Context, id string) error {
	ok, err := s.repo.UpdateStatusIf(ctx, id, StatusActive, StatusCompleted)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// Distinguish a missing booking from one already finalized.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrAlreadyFinalized
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
