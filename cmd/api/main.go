package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"hotelstay/internal/config"
	"hotelstay/internal/database"
	"hotelstay/internal/events"
	"hotelstay/internal/middleware"
	"hotelstay/internal/modules/analytics"
	"hotelstay/internal/modules/auth"
	"hotelstay/internal/modules/availability"
	"hotelstay/internal/modules/catalog"
	"hotelstay/internal/modules/reservation"
	"hotelstay/internal/notify"
	jwtsvc "hotelstay/internal/pkg/jwt"
	"hotelstay/internal/repository"
)

func main() {
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

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	// Event fan-out: Kafka for external subscribers (email and friends),
	// the websocket hub for live staff dashboards. Both best-effort.
	hub := notify.NewHub()
	publishers := events.Multi{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publishers = append(publishers, kp)
	}

	var cache *analytics.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = analytics.NewCache(rdb, cfg.AnalyticsCacheTTL)
	}

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	availabilityService := availability.NewService(roomRepo, bookingRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	reservationService := reservation.NewService(bookingRepo, roomRepo, publishers)
	reservationHandler := reservation.NewHandler(reservationService)

	analyticsService := analytics.NewService(bookingRepo, roomRepo, cache)
	analyticsHandler := analytics.NewHandler(analyticsService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)

		// authenticated guests and staff
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			reservationHandler.RegisterRoutes(protected)

			staff := protected.Group("/")
			staff.Use(middleware.StaffOnly())
			{
				reservationHandler.RegisterStaffRoutes(staff)
				catalogHandler.RegisterStaffRoutes(staff)
				analyticsHandler.RegisterRoutes(staff)

				staff.GET("/ws/events", func(c *gin.Context) {
					_ = hub.ServeWS(c.Writer, c.Request, c.GetInt64("user_id"))
				})
			}
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
