package bootstrap

import (
	"fmt"
	"strings"

	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/core/ports"
	"github.com/freud/split-text-smartly/internal/core/usecase"
	"github.com/freud/split-text-smartly/internal/infrastructure/chunking"
	"github.com/freud/split-text-smartly/internal/infrastructure/extractor"
	"github.com/freud/split-text-smartly/internal/infrastructure/profiles"
	"github.com/freud/split-text-smartly/internal/infrastructure/queue/nats"
	"github.com/freud/split-text-smartly/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	Profiles  *profiles.Store
	SplitUC   *usecase.SplitTextUseCase
	Extractor ports.TextExtractor

	queue *nats.Queue
}

// New wires the in-process split engine. It does not touch the network;
// the NATS connection is opened on first use.
func New(cfg config.Config) (*App, error) {
	defaults := cfg.DefaultSplitOptions()
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("split defaults: %w", err)
	}

	store, err := profiles.Load(cfg.SplitProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("load split profiles: %w", err)
	}

	return &App{
		Config:    cfg,
		Profiles:  store,
		SplitUC:   usecase.NewSplitTextUseCase(defaults, chunking.NewChunker, store),
		Extractor: extractor.New(),
	}, nil
}

func (a *App) Queue() (*nats.Queue, error) {
	if a.queue != nil {
		return a.queue, nil
	}
	policy := resilience.DefaultConfig()
	policy.Retry.MaxAttempts = a.Config.NATSRetryMaxAttempts
	policy.Breaker.Enabled = a.Config.NATSBreakerEnabled

	queue, err := nats.NewWithOptions(a.Config.NATSURL, a.Config.NATSSubject, nats.Options{
		QueueGroup:         a.Config.NATSQueueGroup,
		RequestTimeout:     a.Config.NATSRequestTimeout(),
		ConnectTimeout:     a.Config.NATSConnectTimeout(),
		ReconnectWait:      a.Config.NATSReconnectWait(),
		MaxReconnects:      a.Config.NATSMaxReconnects,
		ResilienceExecutor: resilience.NewExecutor(policy),
	})
	if err != nil {
		return nil, fmt.Errorf("init split queue: %w", err)
	}
	a.queue = queue
	return queue, nil
}

// SplitService returns what the outer surfaces call. With the nats backend
// splits run on workers and are observed there.
func (a *App) SplitService(source string, observer usecase.SplitObserver) (ports.TextSplitService, error) {
	switch strings.ToLower(strings.TrimSpace(a.Config.SplitBackend)) {
	case "", config.SplitBackendLocal:
		if observer == nil {
			return a.SplitUC, nil
		}
		return a.SplitUC.WithObserver(source, observer), nil
	case config.SplitBackendNATS:
		return a.Queue()
	default:
		return nil, fmt.Errorf("unknown split backend %q", a.Config.SplitBackend)
	}
}

func (a *App) DocumentService(splitter ports.TextSplitService) *usecase.SplitDocumentUseCase {
	return usecase.NewSplitDocumentUseCase(a.Extractor, splitter)
}

func (a *App) Close() {
	if a.queue != nil {
		a.queue.Close()
	}
}
