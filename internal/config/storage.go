package config

import "fmt"

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type StorageConfig struct {
	DriverName string `yaml:"driver"`
}

func (s *StorageConfig) Driver() string {
	return s.DriverName
}

func (s *StorageConfig) validate() error {
	switch s.DriverName {
	case DriverMemory, DriverSQLite, DriverPostgres:
		return nil
	}
	return fmt.Errorf("unknown storage driver %q", s.DriverName)
}
