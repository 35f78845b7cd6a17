package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/grubvote/internal/code"
	"github.com/KirkDiggler/grubvote/internal/common/clock"
	"github.com/KirkDiggler/grubvote/internal/common/password"
	"github.com/KirkDiggler/grubvote/internal/common/uuid"
	"github.com/KirkDiggler/grubvote/internal/handlers/discord"
	"github.com/KirkDiggler/grubvote/internal/handlers/ws"
	"github.com/KirkDiggler/grubvote/internal/logger"
	preferencesRepo "github.com/KirkDiggler/grubvote/internal/repositories/preferences"
	sessionRepo "github.com/KirkDiggler/grubvote/internal/repositories/session"
	"github.com/KirkDiggler/grubvote/internal/services/broadcast"
	"github.com/KirkDiggler/grubvote/internal/services/menugen"
	"github.com/KirkDiggler/grubvote/internal/services/messaging"
	"github.com/KirkDiggler/grubvote/internal/services/voting"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool             `help:"Enable debug logging." env:"GRUBVOTE_DEBUG"`
		Version kong.VersionFlag `help:"Print the version."`

		Listen      string   `help:"HTTP listen address" default:"0.0.0.0:8080" env:"GRUBVOTE_LISTEN"`
		CORSOrigins []string `help:"allowed browser origins" default:"*" env:"GRUBVOTE_CORS_ORIGINS"`

		Redis   RedisFlags   `embed:"" prefix:"redis-"`
		OpenAI  OpenAIFlags  `embed:"" prefix:"openai-"`
		Discord DiscordFlags `embed:"" prefix:"discord-"`
	}
)

// RedisFlags configure the registered-user preference store. Without an
// address every participant is treated as a guest.
type RedisFlags struct {
	Addr     string `help:"Redis address for stored preferences" env:"REDIS_ADDR"`
	Password string `help:"Redis password" env:"REDIS_PASSWORD"`
	DB       int    `help:"Redis database" default:"0" env:"REDIS_DB"`
	Seed     string `help:"JSON file of user preferences to load at startup" type:"existingfile" env:"REDIS_SEED_FILE"`
}

// OpenAIFlags configure the AI menu engine
type OpenAIFlags struct {
	APIKey  string `help:"OpenAI API key, enables the AI menu engine" env:"OPENAI_API_KEY"`
	Model   string `help:"OpenAI model" default:"gpt-4o-mini" env:"OPENAI_MODEL"`
	BaseURL string `help:"OpenAI compatible base URL" env:"OPENAI_BASE_URL"`
}

// DiscordFlags configure the results announcer
type DiscordFlags struct {
	Token     string `help:"Discord bot token" env:"DISCORD_TOKEN"`
	ChannelID string `help:"Discord channel to announce results in" env:"DISCORD_CHANNEL_ID"`
	Tone      string `help:"Results tone" default:"celebration" enum:"neutral,funny,celebration" env:"DISCORD_TONE"`
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&cli,
		kong.Name("grubvote"),
		kong.Description("Real-time group voting on where to eat."),
		kong.Vars{"version": version},
	)

	ctx.FatalIfErrorf(run())
}

func run() error {
	log := logger.Setup(cli.Debug)
	log.Info().Str("version", version).Bool("debug", cli.Debug).Msg("Starting grubvote")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	var prefs preferencesRepo.Repository
	if cli.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cli.Redis.Addr,
			Password: cli.Redis.Password,
			DB:       cli.Redis.DB,
		})
		defer redisClient.Close()

		repo, err := preferencesRepo.NewRedis(&preferencesRepo.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			return fmt.Errorf("failed to create preferences repository: %w", err)
		}
		prefs = repo
		log.Info().Str("addr", cli.Redis.Addr).Msg("Using Redis preference store")

		if cli.Redis.Seed != "" {
			if err := seedPreferences(ctx, prefs, cli.Redis.Seed); err != nil {
				return err
			}
			log.Info().Str("file", cli.Redis.Seed).Msg("Seeded user preferences")
		}
	} else {
		log.Info().Msg("No Redis address, registered users get no stored preferences")
	}

	var generator menugen.Generator
	if cli.OpenAI.APIKey != "" {
		gen, err := menugen.NewOpenAI(&menugen.Config{
			APIKey:  cli.OpenAI.APIKey,
			Model:   cli.OpenAI.Model,
			BaseURL: cli.OpenAI.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to create menu generator: %w", err)
		}
		generator = gen
		log.Info().Str("model", cli.OpenAI.Model).Msg("AI menu engine enabled")
	}

	hub := broadcast.NewHub(&broadcast.Config{Logger: log})

	svc, err := voting.New(&voting.Config{
		SessionRepo:     sessionRepo.NewMemory(),
		PreferencesRepo: prefs,
		Publisher:       hub,
		MenuGenerator:   generator,
		Clock:           &clock.DefaultClock{},
		UUIDGenerator:   uuid.New(),
		CodeGenerator:   code.New(&code.Config{}),
		Hasher:          password.NewBcrypt(nil),
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("failed to create voting service: %w", err)
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start voting service: %w", err)
	}
	defer svc.Stop()

	if cli.Discord.Token != "" && cli.Discord.ChannelID != "" {
		msgs, err := messaging.NewService(&messaging.Config{})
		if err != nil {
			return fmt.Errorf("failed to create messaging service: %w", err)
		}

		announcer, err := discord.New(&discord.Config{
			Token:     cli.Discord.Token,
			ChannelID: cli.Discord.ChannelID,
			Hub:       hub,
			Messaging: msgs,
			Tone:      messaging.MessageTone(cli.Discord.Tone),
			Logger:    log,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord announcer: %w", err)
		}
		if err := announcer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start Discord announcer: %w", err)
		}
		defer announcer.Stop()
	}

	handler, err := ws.New(&ws.Config{
		Service:        svc,
		Hub:            hub,
		AllowedOrigins: cli.CORSOrigins,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("failed to create websocket handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              cli.Listen,
		Handler:           withCORS(cli.CORSOrigins, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cli.Listen).Msg("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown; they end
	// when the process exits
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server")
	}

	return nil
}

// withCORS lets browser clients on other origins reach the server
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})
	return middleware.Handler(h)
}

func seedPreferences(ctx context.Context, repo preferencesRepo.Repository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	if _, err := preferencesRepo.Seed(ctx, repo, f); err != nil {
		return fmt.Errorf("failed to seed preferences: %w", err)
	}

	return nil
}
