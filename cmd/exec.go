package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/spf13/cobra"

	"ticket-booking/config"
	"ticket-booking/handlers"
	"ticket-booking/internal/services/payout"
	_ "ticket-booking/migrations"
	"ticket-booking/monitoring"
	"ticket-booking/security"
	"ticket-booking/services"
	"ticket-booking/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub notifier
	notifier := services.NewNotifier(cfg)

	// Initialize the refund payout gateway
	gateway := payout.New(&payout.ClientConfig{
		Provider:   payout.Provider(cfg.PayoutProvider),
		BaseURL:    cfg.PayoutBaseURL,
		MerchantID: cfg.PayoutMerchant,
		SecretKey:  cfg.PayoutSecretKey,
		Timeout:    cfg.PayoutTimeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	eventService := services.NewEventService(app, redisClient, cfg.CapacityCacheTTL)
	reservationService := services.NewReservationService(app, eventService, notifier)
	ticketService := services.NewTicketService(app, notifier)
	refundService := services.NewRefundService(app, gateway, notifier)
	entryService := services.NewEntryService(app, notifier, cfg.EntrySessionTTL)
	accountService := services.NewAccountService(app)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(app, eventService)
	reservationHandler := handlers.NewReservationHandler(app, reservationService)
	ticketHandler := handlers.NewTicketHandler(app, ticketService)
	refundHandler := handlers.NewRefundHandler(app, refundService)
	entryHandler := handlers.NewEntryHandler(app, entryService)
	accountHandler := handlers.NewAccountHandler(app, accountService)
	payoutHandler := handlers.NewPayoutHandler(app, cfg.PayoutSecretKey, cfg.PayoutWebhookTokenHash)

	rateLimiter := security.NewRateLimiter(redisClient)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "hash-credential [secret]",
		Short: "Print the bcrypt hash of a webhook credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			hash, err := payout.HashCredential([]byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	})

	// Monitoring
	if cfg.EnableMetrics {
		monitoring.NewMonitor(redisClient)
		monitoring.StartOpsServer(cfg.MetricsPort, redisClient)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Register routes
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Event endpoints (public)
		se.Router.GET("/api/booking/events", eventHandler.List)
		se.Router.GET("/api/booking/events/{id}", eventHandler.Get)

		// Reservation endpoints
		se.Router.POST("/api/booking/reservations", reservationHandler.Create).
			BindFunc(rateLimiter.AntiBotCheck()).
			BindFunc(rateLimiter.BookingRateLimit(10))
		se.Router.GET("/api/booking/reservations", reservationHandler.List)
		se.Router.POST("/api/booking/reservations/{id}/confirm", reservationHandler.Confirm).
			Bind(apis.RequireSuperuserAuth())
		se.Router.POST("/api/booking/reservations/{id}/void", reservationHandler.Void).
			Bind(apis.RequireSuperuserAuth())

		// Ticket endpoints
		se.Router.GET("/api/booking/tickets", ticketHandler.List)
		se.Router.POST("/api/booking/tickets/{id}/transfer", ticketHandler.Transfer).
			BindFunc(rateLimiter.BookingRateLimit(10))
		se.Router.GET("/api/booking/tickets/{id}/history", ticketHandler.History)

		// Cancellation / refund endpoints
		se.Router.POST("/api/booking/cancellations", refundHandler.RequestCancellation).
			BindFunc(rateLimiter.BookingRateLimit(10))
		se.Router.GET("/api/booking/cancellations", refundHandler.List)
		se.Router.POST("/api/booking/cancellations/{id}/approve", refundHandler.Approve).
			Bind(apis.RequireSuperuserAuth())
		se.Router.POST("/api/booking/cancellations/{id}/reject", refundHandler.Reject).
			Bind(apis.RequireSuperuserAuth())
		se.Router.GET("/api/booking/refund-quote", refundHandler.Quote)

		// Entry gate endpoints
		se.Router.POST("/api/booking/entry-sessions", entryHandler.Create).
			BindFunc(rateLimiter.BookingRateLimit(20))
		se.Router.GET("/api/booking/entry-sessions/{id}", entryHandler.Get)
		se.Router.POST("/api/booking/entry-sessions/{id}/use", entryHandler.Use).
			Bind(apis.RequireSuperuserAuth())

		// Account lookup
		se.Router.GET("/api/booking/account/email-by-phone", accountHandler.EmailByPhone)

		// Gateway callback, authenticated by signature rather than a user
		se.Router.POST("/api/booking/payout/webhook", payoutHandler.Webhook)

		// Periodic sweep of overdue entry sessions, the stand-in for the
		// platform's update_expired_sessions procedure.
		go runSessionCleanup(ctx, entryService, cfg.CleanupInterval)

		log.Println("Server routes registered")

		return se.Next()
	})

	// Start server
	return app.Start()
}

// runSessionCleanup expires overdue entry sessions on a fixed interval.
func runSessionCleanup(ctx context.Context, entries *services.EntryService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := entries.CleanupExpired(ctx)
			if err != nil {
				log.Printf("session cleanup: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("session cleanup: expired %d sessions", n)
			}
		}
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
