package assembly

import (
	"net/http"
	"time"

	"chat-gate-service/cache"
	"chat-gate-service/conf"
	"chat-gate-service/middleware"
	"chat-gate-service/proxy"
	"chat-gate-service/repository"
	"chat-gate-service/service"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/txix-open/isp-kit/http/httpcli"
	"github.com/txix-open/isp-kit/log"
)

const (
	metricsPath = "/internal/metrics"
)

type Locator struct {
	logger         log.Logger
	memoryCache    *cache.Cache
	webhookCli     *httpcli.Client
	metrics        *service.Metrics
	metricsHandler http.Handler
	now            func() time.Time
}

func NewLocator(
	logger log.Logger,
	memoryCache *cache.Cache,
	webhookCli *httpcli.Client,
	metrics *service.Metrics,
	metricsHandler http.Handler,
	now func() time.Time,
) Locator {
	return Locator{
		logger:         logger,
		memoryCache:    memoryCache,
		webhookCli:     webhookCli,
		metrics:        metrics,
		metricsHandler: metricsHandler,
		now:            now,
	}
}

func (l Locator) Handler(config conf.Remote, redisCli redis.UniversalClient) http.Handler {
	var store service.RateLimitStore = repository.NewMemoryRateLimit(l.memoryCache)
	if redisCli != nil {
		store = repository.NewRedisRateLimit(redisCli)
	}
	throttling := service.NewThrottling(store, config.RateLimit, l.now)
	clientAddress := service.NewClientAddress(config.ClientAddress)

	webhook := repository.NewWebhook(l.webhookCli, config.Chat.WebhookUrl, config.Http.GetProxyTimeout())
	chat := proxy.NewChat(webhook, l.metrics, proxy.ChatConfig{
		AllowedOrigin:    config.Chat.GetAllowedOrigin(),
		Source:           config.Chat.GetSource(),
		MaxMessageLength: config.Chat.GetMaxMessageLength(),
	}, l.now)

	handler := middleware.Chain(
		chat,
		middleware.RequestId(),
		middleware.Metrics(l.metrics),
		middleware.Logger(l.logger, config.Logging.RequestLogEnable, config.Logging.BodyLogEnable),
		middleware.ErrorHandler(l.logger),
		middleware.Cors(config.Chat.GetAllowedOrigin(), http.MethodPost),
		middleware.Method(http.MethodPost),
		middleware.Origin(config.Chat.GetAllowedOrigins()),
		middleware.ClientAddress(clientAddress),
		middleware.Throttling(throttling),
	)
	entrypoint := middleware.Entrypoint(config.Http.GetMaxRequestBodySize(), handler, l.logger)

	router := mux.NewRouter()
	router.Handle(config.Http.GetChatPath(), entrypoint)
	router.Handle(metricsPath, l.metricsHandler).Methods(http.MethodGet)

	return router
}
