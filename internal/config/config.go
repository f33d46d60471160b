package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFile    = "data/config.yaml"
	configEnvPath = "CONFIG_FILE"
)

type config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	App       AppConfig       `yaml:"app"`
	Storage   StorageConfig   `yaml:"storage"`
	SQLite    SQLiteConfig    `yaml:"sqlite"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type Service struct {
	config config
}

// New reads the file named by CONFIG_FILE, or data/config.yaml.
func New() (*Service, error) {
	path := os.Getenv(configEnvPath)
	if path == "" {
		path = configFile
	}
	return NewFromFile(path)
}

func NewFromFile(path string) (*Service, error) {
	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	return Parse(rawYAML)
}

func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{}

	err := yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	s.setDefaults()
	if err = s.validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return s, nil
}

func (s *Service) setDefaults() {
	if s.config.Storage.DriverName == "" {
		s.config.Storage.DriverName = DriverMemory
	}
	if s.config.App.TimezoneName == "" {
		s.config.App.TimezoneName = defaultTimezone
	}
	if s.config.App.CacheTTLSeconds == 0 {
		s.config.App.CacheTTLSeconds = defaultCacheTTLSeconds
	}
	if s.config.SQLite.DBPath == "" {
		s.config.SQLite.DBPath = defaultSQLitePath
	}
	if s.config.Kafka.Topic == "" {
		s.config.Kafka.Topic = defaultExpensesTopic
	}
	if s.config.Tracing.Service == "" {
		s.config.Tracing.Service = defaultServiceName
	}
	if s.config.Metrics.ListenAddr == "" {
		s.config.Metrics.ListenAddr = defaultMetricsAddr
	}
}

func (s *Service) validate() error {
	if err := s.config.Storage.validate(); err != nil {
		return err
	}
	return s.config.App.validate()
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Storage() *StorageConfig {
	return &s.config.Storage
}

func (s *Service) SQLite() *SQLiteConfig {
	return &s.config.SQLite
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Tracing() *TracingConfig {
	return &s.config.Tracing
}

func (s *Service) Metrics() *MetricsConfig {
	return &s.config.Metrics
}
