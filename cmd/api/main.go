package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autoshop/internal/config"
	"autoshop/internal/database"
	"autoshop/internal/middleware"
	"autoshop/internal/modules/appointments"
	"autoshop/internal/modules/auth"
	"autoshop/internal/modules/booking"
	"autoshop/internal/modules/customers"
	"autoshop/internal/modules/liveboard"
	"autoshop/internal/modules/onboarding"
	"autoshop/internal/modules/repairorders"
	"autoshop/internal/modules/serviceitems"
	"autoshop/internal/modules/settings"
	"autoshop/internal/modules/staff"
	"autoshop/internal/modules/vehicles"
	jwtsvc "autoshop/internal/pkg/jwt"
	"autoshop/internal/pkg/metrics"
	"autoshop/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	serviceItemRepo := repository.NewServiceItemRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	repairOrderRepo := repository.NewRepairOrderRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := liveboard.NewHub()

	authHandler := auth.NewHandler(auth.NewService(tenantRepo, userRepo, j))
	bookingHandler := booking.NewHandler(booking.NewService(tenantRepo, serviceItemRepo, appointmentRepo, hub))
	customerHandler := customers.NewHandler(customers.NewService(customerRepo))
	vehicleHandler := vehicles.NewHandler(vehicles.NewService(vehicleRepo, customerRepo))
	serviceItemHandler := serviceitems.NewHandler(serviceitems.NewService(serviceItemRepo))
	appointmentHandler := appointments.NewHandler(appointments.NewService(appointmentRepo, tenantRepo, serviceItemRepo, hub))
	repairOrderHandler := repairorders.NewHandler(repairorders.NewService(repairOrderRepo, appointmentRepo, customerRepo))
	staffHandler := staff.NewHandler(staff.NewService(userRepo))
	settingsHandler := settings.NewHandler(settings.NewService(tenantRepo))
	onboardingHandler := onboarding.NewHandler(onboarding.NewService(tenantRepo, serviceItemRepo))
	wsHandler := liveboard.NewWSHandler(hub, j)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.New(cfg.ServiceName).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			customerHandler.RegisterRoutes(protected)
			vehicleHandler.RegisterRoutes(protected)
			serviceItemHandler.RegisterRoutes(protected)
			appointmentHandler.RegisterRoutes(protected)
			repairOrderHandler.RegisterRoutes(protected)
			staffHandler.RegisterRoutes(protected)
			settingsHandler.RegisterRoutes(protected)
			onboardingHandler.RegisterRoutes(protected)
		}

		// websocket auth rides in the query string, not a header
		wsHandler.RegisterRoutes(v1)
	}

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
