// README: Entry point; loads config, wires Firebase, optional Postgres/Redis/Maps/Kafka/Telegram, starts HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"tvirti/internal/config"
	httptransport "tvirti/internal/http"
	"tvirti/internal/infra"
	"tvirti/internal/maps"
	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/location"
	"tvirti/internal/modules/order"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, app)
	if err != nil {
		log.Fatalf("firebase auth: %v", err)
	}
	fs, err := infra.NewFirestore(ctx, app)
	if err != nil {
		log.Fatal(err)
	}
	defer fs.Close()
	fcm, err := infra.NewMessaging(ctx, app)
	if err != nil {
		log.Fatal(err)
	}

	var cache pricing.SnapshotCache
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		cache = pricing.NewRedisSnapshotCache(rdb, cfg.Pricing.CacheTTL)
	} else {
		log.Printf("[main] TVIRTI_REDIS_ADDR not set; pricing snapshot is read on every quote")
	}
	pricingSvc := pricing.NewService(pricing.NewSettingsStore(fs), cache)

	var routes location.RouteEstimator
	var geocoder location.Geocoder
	if cfg.Maps.APIKey != "" {
		rs, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal(err)
		}
		gs, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal(err)
		}
		routes, geocoder = rs, gs
	} else {
		log.Printf("[main] GOOGLE_MAPS_API_KEY not set; using straight-line distances")
	}
	locationSvc := location.NewService(routes, geocoder)

	driverSvc := driver.NewService(driver.NewFirestoreStore(fs))

	deps := order.Deps{
		Store:     order.NewFirestoreStore(fs),
		Pricing:   pricingSvc,
		Locations: locationSvc,
		Drivers:   driverSvc,
		Push:      notify.NewPushNotifier(fcm),
	}
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		journal := order.NewPostgresJournal(pool)
		if err := journal.Migrate(ctx); err != nil {
			log.Fatalf("journal migrate: %v", err)
		}
		deps.Journal = journal
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Timeout)
		if err != nil {
			log.Fatal(err)
		}
		deps.Notifier = tg
	} else {
		log.Printf("[main] Telegram not configured; new orders are not announced")
	}
	if len(cfg.Kafka.Brokers) > 0 {
		w := infra.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer w.Close()
		deps.Stream = notify.NewKafkaPublisher(w)
	}
	orderSvc := order.NewService(deps)

	router := httptransport.NewRouter(httptransport.Services{
		Orders:  orderSvc,
		Drivers: driverSvc,
		Pricing: pricingSvc,
	}, verifier, cfg.Admin.Role)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[main] shutdown: %v", err)
		}
	}()

	log.Printf("[main] listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
