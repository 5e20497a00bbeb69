package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-hojas/internal/application/auth"
	"github.com/jhoicas/inventario-hojas/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Executor   CommandExecutor
	QueryUC    *usecase.QueryUseCase
	ReportUC   *usecase.ReportUseCase
	AdvisoryUC *usecase.AdvisoryUseCase
	Hub        *StockHub
	// AuthUC nil deja la API abierta (modo local de un solo operador).
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	JWTIssuer string
	Logger    zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/token", authHandler.Token)
		protected = api.Group("", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}

	// Productos
	productHandler := NewProductHandler(deps.Executor, deps.QueryUC)
	protected.Get("/products", productHandler.List)
	protected.Post("/products", productHandler.Create)
	protected.Patch("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	// Movimientos
	movementHandler := NewMovementHandler(deps.Executor, deps.QueryUC)
	protected.Get("/movements", movementHandler.List)
	protected.Post("/movements", movementHandler.Create)
	protected.Patch("/movements/:id", movementHandler.Update)
	protected.Delete("/movements/:id", movementHandler.Delete)

	// Stock actual y descargas
	stockHandler := NewStockHandler(deps.QueryUC, deps.ReportUC)
	protected.Get("/stock", stockHandler.Get)
	protected.Get("/stock/report.pdf", stockHandler.ReportPDF)
	protected.Get("/stock/export.xml", stockHandler.ExportXML)
	if deps.Hub != nil {
		protected.Get("/stock/ws", RequireUpgrade, websocket.New(deps.Hub.Handle))
	}

	// Análisis de IA
	advisoryHandler := NewAdvisoryHandler(deps.AdvisoryUC, deps.Logger)
	protected.Get("/advisory", advisoryHandler.Get)
	protected.Post("/advisory", advisoryHandler.Analyze)
}
