package bootstrap

import (
	"context"
	"fmt"

	"bible-study-be/internal/config"
	"bible-study-be/internal/controller"
	"bible-study-be/internal/mapper"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/pkg/serverutils"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/internal/repository/memory"
	redisRepo "bible-study-be/internal/repository/redis"
	"bible-study-be/internal/service"
	"bible-study-be/internal/websocket"
	"bible-study-be/pkg/events"
	"bible-study-be/pkg/llm/factory"
	"bible-study-be/pkg/suggestion"

	pktNats "bible-study-be/pkg/nats"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	SessionController controller.ISessionController
	ExploreController controller.IExploreController

	// Services
	Sessions service.ISessionService
	Explorer service.IExplorationService
	Shell    service.IShellService

	Issuer       *serverutils.TokenIssuer
	WebSocketHub *websocket.Hub
	Logger       logger.ILogger

	closers []func()
}

// NewContainer wires every component from cfg. The returned container owns
// background goroutines and connections; release them with Close.
func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Session storage
	slots, err := c.newSlotRepository(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	// 2. Event bus, optional
	var publisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher, events disabled", map[string]interface{}{"error": err})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Generator
	generator, err := factory.NewStructuredGenerator(
		ctx,
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "Using LLM Provider", map[string]interface{}{"provider": cfg.Ai.LLMProvider, "model": cfg.Ai.LLMModel})

	// 4. Suggestions
	catalog := suggestion.Default()
	if cfg.Suggestions.File != "" {
		catalog, err = suggestion.LoadFile(cfg.Suggestions.File, nil)
		if err != nil {
			c.Close()
			return nil, err
		}
	}

	// 5. Services
	sessions, err := service.NewSessionService(slots, service.SessionOptions{
		StorageKey:   cfg.Session.StorageKey,
		SignInDelay:  cfg.Session.SignInDelay,
		SignOutDelay: cfg.Session.SignOutDelay,
	}, sysLogger, publisher)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Sessions = sessions
	c.closers = append(c.closers, func() { _ = sessions.Close() })

	c.Explorer = service.NewExplorationService(generator, sysLogger, publisher)

	shell := service.NewShellService(sessions, c.Explorer, sysLogger)
	if err := shell.Start(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.Shell = shell
	c.closers = append(c.closers, func() { _ = shell.Close() })

	// 6. WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	c.WebSocketHub = websocket.NewHub(sessions, sysLogger)
	go c.WebSocketHub.Run(hubCtx)
	c.closers = append(c.closers, func() {
		stopHub()
		<-c.WebSocketHub.Done()
	})

	// 7. Controllers
	c.Issuer = serverutils.NewTokenIssuer(cfg.App.JWTSecret, serverutils.DefaultTokenTTL)
	viewMapper := mapper.NewViewMapper(catalog, sysLogger)

	c.AuthController = controller.NewAuthController(shell, c.Issuer, viewMapper)
	c.SessionController = controller.NewSessionController(sessions, c.WebSocketHub)
	c.ExploreController = controller.NewExploreController(shell, viewMapper, catalog)

	return c, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	_ = c.Logger.Sync()
}

func (c *Container) newSlotRepository(ctx context.Context, cfg *config.Config) (contract.SlotRepository, error) {
	switch cfg.Session.Storage {
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			c.Logger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("connect to Redis: %w", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		c.Logger.Info("Bootstrap", "Using Redis session storage", map[string]interface{}{"channel": redisRepo.DefaultChannel})
		return redisRepo.NewSlotRepository(rdb, redisRepo.DefaultChannel), nil

	case "memory", "":
		repo := memory.NewSlotRepository()
		c.closers = append(c.closers, func() { _ = repo.Close() })
		return repo, nil

	default:
		return nil, fmt.Errorf("unsupported session storage: %s", cfg.Session.Storage)
	}
}
