package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/history"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	repo history.Repository
}

func NewHandler(repo history.Repository) *Handler {
	return &Handler{repo: repo}
}

type ListHistoryRequest struct {
	request.ListParams
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

type RecordResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookingID string    `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the cancellation audit trail, newest first.
func (h *Handler) List(c *gin.Context) {
	var query ListHistoryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	records, total, err := h.repo.List(c.Request.Context(), history.Filter{
		UserID:   query.UserID,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RecordResponse, len(records))
	for i, rec := range records {
		items[i] = RecordResponse{
			ID:        rec.ID,
			UserID:    rec.UserID,
			BookingID: rec.BookingID,
			CreatedAt: rec.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, query.Page, query.PageSize, total))
}
