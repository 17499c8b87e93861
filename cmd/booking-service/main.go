package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmyspot/internal/auth"
	"bookmyspot/internal/booking"
	"bookmyspot/internal/booking/api"
	bookingdb "bookmyspot/internal/booking/db"
	bookingkafka "bookmyspot/internal/booking/kafka"
	"bookmyspot/internal/booking/qr"
	holds "bookmyspot/internal/booking/redis"
	"bookmyspot/internal/config"
	"bookmyspot/internal/database/migrations"
	"bookmyspot/internal/kafka"
	"bookmyspot/internal/logger"
	"bookmyspot/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func verifyConnections(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bun.DB, *redis.Client) {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	log.Info("DATABASE", "PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

// subscribeRefunds applies the admin-only refunded transition when the
// payments service reports a completed refund for a cancelled booking.
func subscribeRefunds(ctx context.Context, brokers []string, groupID string, svc *booking.Service, log *logger.Logger) *kafka.Consumer {
	consumer := kafka.NewConsumer(brokers, kafka.TopicPaymentRefunded, groupID)

	go consumer.Start(ctx, func(event map[string]any) {
		ref, _ := event["booking_ref"].(string)
		if ref == "" {
			log.Warn("REFUND", "Refund event missing booking_ref, skipping")
			return
		}

		log.Info("REFUND", fmt.Sprintf("Refund completed for booking %s, marking refunded", ref))
		if _, err := svc.TransitionStatus(ctx, ref, models.StatusRefunded, models.ActorAdmin, "payment refunded"); err != nil {
			log.Error("REFUND", fmt.Sprintf("Failed to mark booking %s refunded: %v", ref, err))
		}
	})

	return consumer
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Booking Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, log)
	defer bunDB.Close()
	defer redisClient.Close()

	runner := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: cfg.Booking.MigrationsDir,
		AutoMigrate:   cfg.Booking.AutoMigrate,
	})
	if err := runner.Run(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}

	var events booking.EventPublisher
	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		log.Info("KAFKA", "Kafka producer initialized successfully")

		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.AllTopics()); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		events = bookingkafka.NewProducer(producer)
	} else {
		log.Warn("KAFKA", "Kafka disabled, booking events will not be published")
	}

	bookingService := booking.NewService(
		&bookingdb.DB{Bun: bunDB},
		holds.NewHolds(redisClient),
		events,
		qr.NewGenerator(cfg.Auth.QRSecret),
		log,
	)

	if cfg.Kafka.Enabled {
		consumer = subscribeRefunds(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, bookingService, log)
		defer consumer.Close()
		log.Info("KAFKA", "Refund consumer subscribed")
	}

	handler := &api.Handler{
		BookingService: bookingService,
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Route("/api/venues", func(r chi.Router) {
		r.Get("/{venueRef}", handler.GetVenue)
	})
	r.Post("/api/bookings/quote", handler.QuotePrice)
	log.Info("ROUTER", "Public venue and quote endpoints registered")

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware())
		log.Info("AUTH", "OIDC middleware applied to protected API routes")

		r.Route("/api/bookings", func(r chi.Router) {
			r.Post("/", handler.CreateBooking)
			r.Get("/", handler.ListBookings)
			r.Get("/export", handler.ExportBookingsCSV)
			r.Get("/summary", handler.BookingSummary)
			r.Get("/{bookingRef}", handler.GetBooking)
			r.Post("/{bookingRef}/status", handler.UpdateStatus)
		})
		log.Info("ROUTER", "Booking routes registered under /api/bookings")

		r.Post("/api/records/normalize", handler.NormalizeRecord)
		log.Info("ROUTER", "Record normalization endpoint registered at /api/records/normalize")
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Booking Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "Booking Service shutdown complete")
	}
}
