package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	authCtrl "agrimitra/pkg/auth/controller"
	cropCtrl "agrimitra/pkg/crop/controller"
	equipmentCtrl "agrimitra/pkg/equipment/controller"
	marketCtrl "agrimitra/pkg/market/controller"
	"agrimitra/pkg/metrics"
	"agrimitra/pkg/middleware"
	orderCtrl "agrimitra/pkg/order/controller"
	rentalCtrl "agrimitra/pkg/rental/controller"
)

type Handlers struct {
	Auth      authCtrl.AuthController
	Crop      cropCtrl.CropController
	Equipment equipmentCtrl.EquipmentController
	Order     orderCtrl.OrderController
	Rental    rentalCtrl.RentalController
	Market    marketCtrl.MarketController
	Health    interface{ Health(echo.Context) error }
}

type Options struct {
	Log      zerolog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Users    middleware.UserResolver
	// StaticDir is served at / when it exists.
	StaticDir string
}

func New(e *echo.Echo, h Handlers, o Options) *echo.Echo {
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(o.Log, o.Metrics))

	e.GET("/health", h.Health.Health)
	e.GET("/api", h.Health.Health)
	if o.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})))
	}

	// a stale uid cookie must not block signing in again
	e.POST("/signup", h.Auth.Signup)
	e.POST("/login", h.Auth.Login)

	api := e.Group("", middleware.Identity(o.Users))
	api.GET("/me", h.Auth.WhoAmI)

	api.POST("/crops", h.Crop.Create)
	api.GET("/crops", h.Crop.List)
	api.DELETE("/crops/:id", h.Crop.Delete)

	api.POST("/equipment", h.Equipment.Create)
	api.GET("/equipment", h.Equipment.List)
	api.DELETE("/equipment/:id", h.Equipment.Delete)

	api.POST("/orders", h.Order.Place)
	api.GET("/orders", h.Order.List)
	api.GET("/orders/:id", h.Order.Get)
	api.PATCH("/orders/:id", h.Order.UpdateStatus)

	api.POST("/rentals", h.Rental.Create)
	api.GET("/rentals", h.Rental.List)

	api.POST("/market-prices", h.Market.Record)
	api.GET("/market-prices", h.Market.Query)
	api.GET("/market-prices/export.xlsx", h.Market.Export)

	if o.StaticDir != "" {
		if st, err := os.Stat(o.StaticDir); err == nil && st.IsDir() {
			e.Static("/", o.StaticDir)
			for _, page := range []string{"farmer", "buyer"} {
				e.File("/"+page, filepath.Join(o.StaticDir, page+".html"))
			}
		} else {
			o.Log.Warn().Str("dir", o.StaticDir).Msg("static dir not found, frontend not served")
		}
	}
	return e
}

// WithCORS wraps h so preflight requests are answered before routing.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{echo.HeaderContentType, middleware.HeaderUserID},
		ExposedHeaders: []string{echo.HeaderXRequestID},
	}).Handler(h)
}
