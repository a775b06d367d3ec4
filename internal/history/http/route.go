package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, operatorMiddleware gin.HandlerFunc) {
	group := g.Group("/history")
	group.Use(authMiddleware, operatorMiddleware)

	group.GET("", h.List)
}
