package config

const defaultSQLitePath = "data/tracker.db"

type SQLiteConfig struct {
	DBPath string `yaml:"path"`
}

func (s *SQLiteConfig) Path() string {
	return s.DBPath
}
