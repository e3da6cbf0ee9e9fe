package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AG-g1/more-house/internal/application/activity"
	"github.com/AG-g1/more-house/internal/application/cashflow"
	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/application/occupancy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OccupancyUC *occupancy.UseCase
	CashflowUC  *cashflow.UseCase
	SyncUC      *mondaysync.SyncUseCase
	Coordinator *mondaysync.Coordinator
	ActivityUC  *activity.UseCase
	Health      HealthChecker
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.Health).Check)

	api := app.Group("/api")

	occ := api.Group("/occupancy")
	occupancyHandler := NewOccupancyHandler(deps.OccupancyUC)
	occ.Get("/summary", occupancyHandler.Summary)
	occ.Get("/monthly", occupancyHandler.Monthly)
	occ.Get("/weekly", occupancyHandler.Weekly)
	occ.Get("/vacancies", occupancyHandler.Vacancies)
	occ.Get("/rooms", occupancyHandler.Rooms)
	occ.Get("/rooms/:roomId/timeline", occupancyHandler.RoomTimeline)
	occ.Get("/timelines", occupancyHandler.Timelines)

	cash := api.Group("/cashflow")
	cashflowHandler := NewCashflowHandler(deps.CashflowUC)
	cash.Get("/summary", cashflowHandler.Summary)
	cash.Get("/monthly", cashflowHandler.Monthly)
	cash.Get("/weekly", cashflowHandler.Weekly)
	cash.Get("/expected", cashflowHandler.Expected)
	cash.Get("/overdue", cashflowHandler.Overdue)

	syncGroup := api.Group("/sync")
	syncHandler := NewSyncHandler(deps.SyncUC, deps.Coordinator)
	syncGroup.Post("/run", syncHandler.Run)
	syncGroup.Get("/status", syncHandler.Status)

	act := api.Group("/activity")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	act.Get("/summary", activityHandler.Summary)
}
