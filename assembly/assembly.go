package assembly

import (
	"context"
	"time"

	"chat-gate-service/cache"
	"chat-gate-service/conf"
	"chat-gate-service/service"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/txix-open/isp-kit/app"
	"github.com/txix-open/isp-kit/bootstrap"
	"github.com/txix-open/isp-kit/cluster"
	"github.com/txix-open/isp-kit/http"
	"github.com/txix-open/isp-kit/http/httpcli"
	"github.com/txix-open/isp-kit/log"
)

const (
	sweepInterval = time.Minute
)

type Assembly struct {
	boot        *bootstrap.Bootstrap
	server      *http.Server
	logger      *log.Adapter
	env         conf.Env
	memoryCache *cache.Cache
	redisCli    redis.UniversalClient
	locator     Locator
}

func New(boot *bootstrap.Bootstrap) (*Assembly, error) {
	env, err := conf.ReadEnv()
	if err != nil {
		return nil, errors.WithMessage(err, "read env config")
	}

	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	memoryCache := cache.New()
	logger := boot.App.Logger()

	return &Assembly{
		boot:        boot,
		server:      http.NewServer(logger),
		logger:      logger,
		env:         env,
		memoryCache: memoryCache,
		locator:     NewLocator(logger, memoryCache, httpcli.New(), metrics, metricsHandler, time.Now),
	}, nil
}

func (a *Assembly) ReceiveConfig(ctx context.Context, remoteConfig []byte) error {
	var (
		newCfg  conf.Remote
		prevCfg conf.Remote
	)
	err := a.boot.RemoteConfig.Upgrade(remoteConfig, &newCfg, &prevCfg)
	if err != nil {
		a.logger.Fatal(ctx, errors.WithMessage(err, "upgrade remote config"))
	}
	err = newCfg.Validate()
	if err != nil {
		a.logger.Fatal(ctx, errors.WithMessage(err, "invalid remote config"))
	}
	newCfg = a.env.Apply(newCfg)

	a.logger.SetLevel(newCfg.Logging.LogLevel)

	if newCfg.Chat.WebhookUrl == "" {
		a.logger.Error(ctx, "chat webhook url is not configured, chat requests will be rejected")
	}

	var newRedisCli redis.UniversalClient
	if newCfg.Redis != nil {
		newRedisCli = redisClient(*newCfg.Redis)
	}

	a.server.Upgrade(a.locator.Handler(newCfg, newRedisCli))

	if a.redisCli != nil {
		_ = a.redisCli.Close()
	}
	a.redisCli = newRedisCli

	return nil
}

func (a *Assembly) Runners() []app.Runner {
	eventHandler := cluster.NewEventHandler().
		RemoteConfigReceiver(a)

	return []app.Runner{
		app.RunnerFunc(func(ctx context.Context) error {
			return a.server.ListenAndServe(a.boot.BindingAddress)
		}),
		app.RunnerFunc(func(ctx context.Context) error {
			return a.boot.ClusterCli.Run(ctx, eventHandler)
		}),
		app.RunnerFunc(func(ctx context.Context) error {
			a.sweep(ctx)
			return nil
		}),
	}
}

func (a *Assembly) Closers() []app.Closer {
	return []app.Closer{
		a.boot.ClusterCli,
		app.CloserFunc(func() error {
			return a.server.Shutdown(context.Background())
		}),
		app.CloserFunc(func() error {
			if a.redisCli != nil {
				return a.redisCli.Close()
			}
			return nil
		}),
	}
}

// sweep drops expired in-memory rate limit entries until ctx is done.
func (a *Assembly) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := a.memoryCache.Sweep()
			a.logger.Debug(ctx, "rate limit entries swept", log.Int("removed", removed))
		}
	}
}

func redisClient(config conf.Redis) redis.UniversalClient {
	if config.Sentinel != nil {
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       config.Sentinel.MasterName,
			SentinelAddrs:    config.Sentinel.Addresses,
			SentinelUsername: config.Sentinel.Username,
			SentinelPassword: config.Sentinel.Password,
			Username:         config.Username,
			Password:         config.Password,
		})
	}
	return redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Username: config.Username,
		Password: config.Password,
	})
}
