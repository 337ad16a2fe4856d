package conf

import (
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
	"github.com/txix-open/isp-kit/rc/schema"
	"github.com/txix-open/jsonschema"
)

const (
	DefaultChatPath         = "/api/chat"
	DefaultAllowedOrigin    = "https://dynaworks.gr"
	DefaultSource           = "dynaworks-website"
	DefaultMaxMessageLength = 1000
	DefaultMaxRequests      = 10

	defaultWindow               = 60 * time.Second
	defaultProxyTimeout         = 15 * time.Second
	defaultMaxRequestBodySizeMb = 1
)

// nolint:gochecknoglobals
var DefaultAllowedOrigins = []string{
	"https://dynaworks.gr",
	"https://www.dynaworks.gr",
	"http://localhost:3000",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
}

func init() {
	schema.CustomGenerators.Register("logLevel", func(field reflect.StructField, s *jsonschema.Schema) {
		s.Type = "string"
		s.Enum = []interface{}{"debug", "info", "error", "fatal"}
	})
}

type Remote struct {
	Redis         *Redis        `schema:"Настройки Redis,если не указано, счетчики ограничений хранятся в памяти экземпляра"`
	Http          Http          `schema:"Настройки HTTP"`
	Logging       Logging       `schema:"Настройки логирования"`
	Chat          Chat          `schema:"Настройки чата"`
	RateLimit     RateLimit     `schema:"Настройки ограничения частоты запросов"`
	ClientAddress ClientAddress `schema:"Настройки определения адреса клиента"`
}

type Http struct {
	ChatPath               string `schema:"Путь обработчика чата,по умолчанию /api/chat"`
	MaxRequestBodySizeInMb int64  `schema:"Максимальная длинна тела запроса,в мегабайтах, по умолчанию 1"`
	ProxyTimeoutInSec      int    `schema:"Таймаут на вызов webhook,в секундах, по умолчанию 15"`
}

type Logging struct {
	LogLevel         log.Level `schemaGen:"logLevel" schema:"Уровень логирования,логирование запросов осуществляется на уровне debug"`
	RequestLogEnable bool      `schema:"Включить логирование запросов"`
	BodyLogEnable    bool      `schema:"Включить логирование тел запросов и ответов,должно быть включено логирование запросов"`
}

type Chat struct {
	WebhookUrl       string   `schema:"Адрес webhook,без него сервис отвечает ошибкой конфигурации; может быть задан переменной окружения CHAT_WEBHOOK_URL"`
	AllowedOrigin    string   `schema:"Значение Access-Control-Allow-Origin,по умолчанию https://dynaworks.gr; может быть задано переменной окружения ALLOWED_ORIGIN"`
	AllowedOrigins   []string `schema:"Разрешенные значения заголовка Origin,по умолчанию адреса сайта и локальной разработки"`
	Source           string   `schema:"Идентификатор источника в запросе к webhook,по умолчанию dynaworks-website"`
	MaxMessageLength int      `valid:"range(0|100000)" schema:"Максимальная длина сообщения,в символах, по умолчанию 1000"`
}

type RateLimit struct {
	MaxRequests int `valid:"range(0|100000)" schema:"Количество запросов в окне,по умолчанию 10"`
	WindowInSec int `valid:"range(0|86400)" schema:"Длительность окна,в секундах, по умолчанию 60"`
}

type ClientAddress struct {
	IgnoreForwardedHeaders bool `schema:"Не доверять заголовкам X-Forwarded-For и Client-Ip,включать, если сервис доступен не через контролируемый reverse proxy"`
	RejectUnidentified     bool `schema:"Отклонять запросы без адреса клиента,иначе такие клиенты используют общий счетчик unknown"`
}

type Redis struct {
	Address  string         `schema:"Адрес,обязателено, если sentinel не указан"`
	Username string         `schema:"Имя пользовтаеля"`
	Password string         `schema:"Пароль"`
	Sentinel *RedisSentinel `schema:"Настройки sentinel,обязательно, если address не указан"`
}

type RedisSentinel struct {
	Addresses  []string `valid:"required" schema:"Адреса нод в кластере"`
	MasterName string   `valid:"required" schema:"Имя мастера"`
	Username   string   `schema:"Имя пользовтаеля в sentinel"`
	Password   string   `schema:"Пароль в sentinel"`
}

func (r Remote) Validate() error {
	if r.Redis != nil && r.Redis.Sentinel == nil && r.Redis.Address == "" {
		return errors.New("invalid redis config. sentinel or address are required")
	}
	if r.Redis != nil && r.Redis.Sentinel != nil && len(r.Redis.Sentinel.Addresses) == 0 {
		return errors.New("invalid redis config. sentinel addresses are required")
	}
	return nil
}

func (cfg Http) GetChatPath() string {
	if cfg.ChatPath == "" {
		return DefaultChatPath
	}
	return cfg.ChatPath
}

func (cfg Http) GetMaxRequestBodySize() int64 {
	if cfg.MaxRequestBodySizeInMb <= 0 {
		return defaultMaxRequestBodySizeMb * 1024 * 1024
	}
	return cfg.MaxRequestBodySizeInMb * 1024 * 1024
}

func (cfg Http) GetProxyTimeout() time.Duration {
	if cfg.ProxyTimeoutInSec <= 0 {
		return defaultProxyTimeout
	}
	return time.Duration(cfg.ProxyTimeoutInSec) * time.Second
}

func (cfg Chat) GetAllowedOrigin() string {
	if cfg.AllowedOrigin == "" {
		return DefaultAllowedOrigin
	}
	return cfg.AllowedOrigin
}

func (cfg Chat) GetAllowedOrigins() []string {
	if len(cfg.AllowedOrigins) == 0 {
		return DefaultAllowedOrigins
	}
	return cfg.AllowedOrigins
}

func (cfg Chat) GetSource() string {
	if cfg.Source == "" {
		return DefaultSource
	}
	return cfg.Source
}

func (cfg Chat) GetMaxMessageLength() int {
	if cfg.MaxMessageLength <= 0 {
		return DefaultMaxMessageLength
	}
	return cfg.MaxMessageLength
}

func (cfg RateLimit) GetMaxRequests() int {
	if cfg.MaxRequests <= 0 {
		return DefaultMaxRequests
	}
	return cfg.MaxRequests
}

func (cfg RateLimit) GetWindow() time.Duration {
	if cfg.WindowInSec <= 0 {
		return defaultWindow
	}
	return time.Duration(cfg.WindowInSec) * time.Second
}
