package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"campusevents/internal/adapters/discord"
	"campusevents/internal/adapters/httpapi"
	"campusevents/internal/application"
	"campusevents/internal/config"
	"campusevents/internal/infrastructure/auth"
	"campusevents/internal/infrastructure/database"
	"campusevents/internal/infrastructure/i18n"
	"campusevents/internal/infrastructure/logging"
	"campusevents/internal/infrastructure/memory"
	"campusevents/internal/infrastructure/metrics"
	"campusevents/internal/infrastructure/mongostore"
	"campusevents/internal/ports/output"
	"campusevents/pkg/tz"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending postgres migrations before serving")
	return cmd
}

// stores groups the repositories of one backend.
type stores struct {
	events       output.EventRepository
	interactions output.InteractionStore
	profiles     output.ProfileRepository
	close        func()
}

func openStores(ctx context.Context, cfg *config.Config, loc *time.Location, migrateFirst bool, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if migrateFirst {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return &stores{
			events:       database.NewEventRepository(pool, loc),
			interactions: database.NewInteractionStore(pool),
			profiles:     database.NewProfileRepository(pool),
			close:        pool.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			events:       mongostore.NewEventRepository(db, loc),
			interactions: mongostore.NewInteractionStore(client, db),
			profiles:     mongostore.NewProfileRepository(db),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Warn().Err(err).Msg("mongo disconnect failed")
				}
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using the in-memory store: data is lost on exit")
		db := memory.NewDB(loc)
		return &stores{
			events:       memory.NewEventRepository(db),
			interactions: memory.NewInteractionStore(db),
			profiles:     memory.NewProfileRepository(db),
			close:        func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func serve(ctx context.Context, cfg *config.Config, migrateFirst bool) error {
	log := logging.New(cfg.LogLevel)

	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, loc, migrateFirst, log)
	if err != nil {
		return err
	}
	defer st.close()

	tr := i18n.NewTranslator(cfg.DefaultLocale, log)
	reg := metrics.New()

	var (
		announcer output.Announcer
		bot       *discord.Bot
	)
	if cfg.AnnouncementsEnabled() {
		bot, err = discord.NewBot(cfg.DiscordToken, log)
		if err != nil {
			return err
		}
		if err := bot.Open(); err != nil {
			return err
		}
		defer func() { _ = bot.Close() }()
		announcer = discord.NewAnnouncer(bot.Session(), cfg.DiscordAnnounceChannelID, loc, tr, cfg.DefaultLocale, log)
	}

	events := application.NewEventService(st.events, st.profiles, announcer, loc, log)
	if bot != nil {
		if err := bot.RegisterCommands(discord.NewHandler(events, loc, tr, cfg.DefaultLocale, log)); err != nil {
			log.Warn().Err(err).Msg("discord commands unavailable")
		}
	}

	handler := httpapi.NewRouter(httpapi.Options{
		Events:         events,
		Interactions:   application.NewInteractionService(st.events, st.interactions, reg, log),
		Profiles:       application.NewProfileService(st.profiles, st.events, log),
		Verifier:       auth.NewGate(cfg.JWTSecret, cfg.JWTIssuer),
		Translator:     tr,
		Metrics:        reg,
		Location:       loc,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
