package conf

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Env holds values that are usually injected by the hosting platform
// rather than distributed through the config service.
type Env struct {
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
	WebhookUrl    string `env:"CHAT_WEBHOOK_URL"`
}

func ReadEnv() (Env, error) {
	cfg := Env{}
	err := env.Parse(&cfg)
	if err != nil {
		return Env{}, errors.WithMessage(err, "parse env")
	}
	return cfg, nil
}

func (e Env) Apply(remote Remote) Remote {
	if e.AllowedOrigin != "" {
		remote.Chat.AllowedOrigin = e.AllowedOrigin
	}
	if e.WebhookUrl != "" {
		remote.Chat.WebhookUrl = e.WebhookUrl
	}
	return remote
}
