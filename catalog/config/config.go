package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/catalog-service/pkg/kafka"
	"github.com/Astemirdum/catalog-service/pkg/logger"
	"github.com/Astemirdum/catalog-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/time/rate"
)

type Storage string

const (
	StoragePostgres Storage = "postgres"
	StorageMemory   Storage = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"CATALOG_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"CATALOG_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
	RateLimit    rate.Limit    `yaml:"rateLimit" envconfig:"RATE_LIMIT"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Storage  Storage      `yaml:"storage" envconfig:"STORAGE"`
	Database postgres.DB  `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options set defaults that
// environment variables override.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func load(ops ...Option) (*Config, error) {
	config := Config{
		Storage: StoragePostgres,
		Server: HTTPServer{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit:    100,
		},
	}
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	switch config.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage %q", config.Storage)
	}
	return &config, nil
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
