package routes

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkoike/shiftworks-backend/config"
	"github.com/mkoike/shiftworks-backend/internal/lineworks"
	"github.com/mkoike/shiftworks-backend/internal/roster"
	"github.com/mkoike/shiftworks-backend/internal/shift/controllers"
	"github.com/mkoike/shiftworks-backend/internal/shift/services"
	"github.com/mkoike/shiftworks-backend/ws"
)

// Init wires services, controllers, and routes onto the Echo instance
// and returns the roster builder so main can hand it to the scheduler.
func Init(e *echo.Echo, db *sql.DB, cfg *config.Config, hub *ws.Hub, lw *lineworks.Client) *roster.Builder {
	shiftService := services.NewShiftService(db)
	builder := roster.NewBuilder(shiftService, cfg.OutputDir, hub)

	webhookController := controllers.NewWebhookController(shiftService, lw, hub, cfg)
	shiftController := controllers.NewShiftController(shiftService, builder)

	e.POST("/callback", webhookController.Callback)
	e.GET("/ws", ws.ServeWS(hub))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/shift", shiftController.ListShiftsHandler)
	api.POST("/roster/build", shiftController.BuildRosterHandler)

	return builder
}
