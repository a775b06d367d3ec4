package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/booking"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{service: service, userService: userService}
}

func (h *Handler) isOperator(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsOperator
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:          userID,
		Adults:          body.Adults,
		Children:        body.Children,
		WeekendNights:   body.WeekendNights,
		WeekNights:      body.WeekNights,
		MealPlan:        body.MealPlan,
		Parking:         body.Parking,
		RoomType:        body.RoomType,
		LeadTime:        body.LeadTime,
		ArrivalYear:     body.ArrivalYear,
		ArrivalMonth:    body.ArrivalMonth,
		ArrivalDay:      body.ArrivalDay,
		MarketSegment:   body.MarketSegment,
		SpecialRequests: body.SpecialRequests,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b, h.isOperator(c, userID)))
}

func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	operator := h.isOperator(c, userID)

	// Guests only ever see their own bookings; operators may scope to a
	// user or see everything.
	filterUserID := userID
	if operator {
		filterUserID = query.UserID
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.Filter{
		UserID:    filterUserID,
		Status:    query.Status,
		RiskLevel: query.RiskLevel,
		Page:      query.Page,
		PageSize:  query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b, operator)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	operator := h.isOperator(c, userID)
	if !operator && b.UserID != userID {
		response.Error(c, booking.ErrNotOwner)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b, operator))
}

func (h *Handler) Cancel(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	userID := auth.GetUserID(c)

	if err := h.service.Cancel(c.Request.Context(), params.ID, userID, h.isOperator(c, userID)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

func (h *Handler) Complete(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if !h.isOperator(c, auth.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "operator access required"})
		return
	}

	if err := h.service.Complete(c.Request.Context(), params.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking completed"})
}

func (h *Handler) Stats(c *gin.Context) {
	if !h.isOperator(c, auth.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "operator access required"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStatsResponse(stats))
}
