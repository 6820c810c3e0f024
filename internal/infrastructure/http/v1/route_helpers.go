package v1

import (
	"github.com/gin-gonic/gin"
)

// ItemRouteHandler defines the item endpoints.
type ItemRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Validate(c *gin.Context)
	History(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	ItemHistory(c *gin.Context)
}

// RegisterItemRoutes registers the item routes on group. Items are addressed
// by name because names, unlike ids, are what users type.
func RegisterItemRoutes(group *gin.RouterGroup, handler ItemRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.POST("/validate", handler.Validate)
	group.GET("/history", handler.History)

	byName := group.Group("/by-name/:name")
	byName.GET("", handler.Get)
	byName.PUT("", handler.Update)
	byName.DELETE("", handler.Delete)
	byName.GET("/history", handler.ItemHistory)
}
