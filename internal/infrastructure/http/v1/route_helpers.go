// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// EntityRouteHandler defines the read and action endpoints of entity tables.
type EntityRouteHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	InvokeAction(c *gin.Context)
}

// FormRouteHandler defines the form session endpoints.
type FormRouteHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	SetValue(c *gin.Context)
	Submit(c *gin.Context)
	Cancel(c *gin.Context)
	OpenNested(c *gin.Context)
	SetNestedValue(c *gin.Context)
	SubmitNested(c *gin.Context)
	CancelNested(c *gin.Context)
}

// PageRouteHandler defines the HTML dashboard pages.
type PageRouteHandler interface {
	Index(c *gin.Context)
	List(c *gin.Context)
	Action(c *gin.Context)
	View(c *gin.Context)
	Create(c *gin.Context)
	Edit(c *gin.Context)
	Form(c *gin.Context)
	Post(c *gin.Context)
}

// RegisterEntityRoutes registers table, detail and row action routes.
//
// Usage:
//
//	handler := handlers.NewEntityHandler(baseHandler, service)
//	RegisterEntityRoutes(v1.Group("/entities"), handler)
func RegisterEntityRoutes(group *gin.RouterGroup, handler EntityRouteHandler) {
	group.GET("/:type", handler.List)
	group.GET("/:type/:id", handler.Get)
	group.POST("/:type/rows/:row/actions/:action", handler.InvokeAction)
}

// RegisterFormRoutes registers form session routes, nested forms included.
func RegisterFormRoutes(group *gin.RouterGroup, handler FormRouteHandler) {
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id/values/:field", handler.SetValue)
	group.POST("/:id/submit", handler.Submit)
	group.DELETE("/:id", handler.Cancel)

	group.POST("/:id/nested/:field", handler.OpenNested)
	group.PUT("/:id/nested/:field/values/:sub", handler.SetNestedValue)
	group.POST("/:id/nested/:field/submit", handler.SubmitNested)
	group.DELETE("/:id/nested/:field", handler.CancelNested)
}

// RegisterPageRoutes registers the HTML pages at the root of rg.
func RegisterPageRoutes(rg gin.IRoutes, handler PageRouteHandler) {
	rg.GET("/", handler.Index)
	rg.GET("/list/:type", handler.List)
	rg.POST("/list/:type/rows/:row/actions/:action", handler.Action)
	rg.GET("/view/:type/:id", handler.View)
	rg.GET("/create/:type", handler.Create)
	rg.GET("/edit/:type/:id", handler.Edit)
	rg.GET("/forms/:id", handler.Form)
	rg.POST("/forms/:id", handler.Post)
}
