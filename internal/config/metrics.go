package config

const defaultMetricsAddr = ":8080"

type MetricsConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (s *MetricsConfig) Addr() string {
	return s.ListenAddr
}
