package fetch

import (
	"errors"
	"time"
)

const (
	DefaultTimeout   = time.Second * 10
	DefaultUserAgent = "hostsmerge"
)

type Config struct {
	Timeout   time.Duration `yaml:"timeout"`    // optional, default 10s
	UserAgent string        `yaml:"user_agent"` // optional
}

func validateConfig(cfg Config) error {
	if cfg.Timeout < 0 {
		return errors.New("'fetch->timeout' is negative")
	}
	return nil
}
