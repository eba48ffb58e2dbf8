package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const (
	CatalogTopic = "catalog-events"
)

type Config struct {
	Addrs   []string      `envconfig:"KAFKA_ADDRS"`
	Timeout time.Duration `envconfig:"KAFKA_TIMEOUT" default:"5s"`
}

// Enabled reports whether any broker address is configured.
func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducerConfig(cfg Config) *sarama.Config {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3
	if cfg.Timeout > 0 {
		defaultCfg.Producer.Timeout = cfg.Timeout
		defaultCfg.Net.DialTimeout = cfg.Timeout
	}
	return defaultCfg
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, NewProducerConfig(cfg))
}
