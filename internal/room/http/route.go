package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, operatorMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
	}

	operator := group.Group("")
	operator.Use(operatorMiddleware)
	{
		operator.POST("", h.Create)
		operator.PATCH("/:id", h.Update)
	}
}
