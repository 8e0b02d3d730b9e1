package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"flushfinder-api/handler"
	"flushfinder-api/middleware"
)

// SetupRouter wires all routes. Reads are open; writes require a
// verified ID token, except reporting, which accepts anonymous callers.
func SetupRouter(
	washrooms *handler.WashroomHandler,
	reports *handler.ReportHandler,
	sessions *handler.SessionHandler,
	authClient *auth.Client,
) *gin.Engine {
	router := gin.Default()

	requireAuth := middleware.RequireAuth(authClient)
	optionalAuth := middleware.OptionalAuth(authClient)

	washroomRoutes := router.Group("/washrooms")
	{
		washroomRoutes.GET("", washrooms.ListWashrooms)
		washroomRoutes.POST("", requireAuth, washrooms.CreateWashroom)
		washroomRoutes.GET("/mine", requireAuth, washrooms.MyWashrooms)
		washroomRoutes.DELETE("/:id", requireAuth, washrooms.DeleteWashroom)
		washroomRoutes.POST("/:id/report", optionalAuth, reports.CreateReport)
	}

	router.POST("/session", requireAuth, sessions.StartSession)

	return router
}
