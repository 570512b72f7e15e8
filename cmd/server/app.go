package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"agrimitra/config"
	"agrimitra/pkg/metrics"
	"agrimitra/router"

	// Auth
	authCtrlImp "agrimitra/pkg/auth/controllerImp"
	authRepoImp "agrimitra/pkg/auth/repositoryImp"
	authSvc "agrimitra/pkg/auth/service"
	authSvcImp "agrimitra/pkg/auth/serviceImp"

	// Listings
	cropCtrlImp "agrimitra/pkg/crop/controllerImp"
	cropRepoImp "agrimitra/pkg/crop/repositoryImp"
	cropSvcImp "agrimitra/pkg/crop/serviceImp"
	equipmentCtrlImp "agrimitra/pkg/equipment/controllerImp"
	equipmentRepoImp "agrimitra/pkg/equipment/repositoryImp"
	equipmentSvcImp "agrimitra/pkg/equipment/serviceImp"

	// Orders / rentals
	orderCtrlImp "agrimitra/pkg/order/controllerImp"
	orderRepoImp "agrimitra/pkg/order/repositoryImp"
	orderSvcImp "agrimitra/pkg/order/serviceImp"
	rentalCtrlImp "agrimitra/pkg/rental/controllerImp"
	rentalRepoImp "agrimitra/pkg/rental/repositoryImp"
	rentalSvcImp "agrimitra/pkg/rental/serviceImp"

	// Market prices
	marketCtrlImp "agrimitra/pkg/market/controllerImp"
	marketRepoImp "agrimitra/pkg/market/repositoryImp"
	marketSvc "agrimitra/pkg/market/service"
	marketSvcImp "agrimitra/pkg/market/serviceImp"

	// Health
	healthCtrlImp "agrimitra/pkg/health/controllerImp"
)

// app holds the wired services for one database handle.
type app struct {
	log     zerolog.Logger
	reg     *prometheus.Registry
	auth    authSvc.AuthService
	ledger  marketSvc.LedgerService
	handler http.Handler
}

func newApp(cfg config.AppConfig, db *gorm.DB, log zerolog.Logger, authOpts ...authSvcImp.Option) *app {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	a := &app{log: log, reg: reg}
	a.auth = authSvcImp.NewAuthService(authRepoImp.New(db), log, authOpts...)
	a.ledger = marketSvcImp.NewLedgerService(marketRepoImp.New(db), log, m)

	h := router.Handlers{
		Auth:      authCtrlImp.NewAuthController(a.auth),
		Crop:      cropCtrlImp.New(cropSvcImp.NewCropService(cropRepoImp.New(db), log)),
		Equipment: equipmentCtrlImp.New(equipmentSvcImp.NewEquipmentService(equipmentRepoImp.New(db), log)),
		Order:     orderCtrlImp.New(orderSvcImp.NewOrderService(orderRepoImp.New(db), log, m)),
		Rental:    rentalCtrlImp.New(rentalSvcImp.NewRentalService(rentalRepoImp.New(db), log, m)),
		Market:    marketCtrlImp.New(a.ledger),
		Health:    healthCtrlImp.NewHealthCtrl(db),
	}
	e := router.New(echo.New(), h, router.Options{
		Log:       log,
		Metrics:   m,
		Gatherer:  reg,
		Users:     a.auth,
		StaticDir: cfg.StaticDir,
	})
	a.handler = router.WithCORS(e, cfg.CORSOrigins)
	return a
}
