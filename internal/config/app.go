package config

import (
	"time"

	"github.com/pkg/errors"
)

const (
	defaultTimezone        = "UTC"
	defaultCacheTTLSeconds = 300
)

type AppConfig struct {
	TimezoneName     string `yaml:"timezone"`
	StrictCategories bool   `yaml:"strict-categories"`
	CacheTTLSeconds  int64  `yaml:"report-cache-ttl-seconds"`

	location *time.Location
}

func (s *AppConfig) validate() error {
	loc, err := time.LoadLocation(s.TimezoneName)
	if err != nil {
		return errors.Wrapf(err, "unknown timezone %q", s.TimezoneName)
	}
	s.location = loc
	return nil
}

// Location is the timezone expense dates and report periods are evaluated in.
func (s *AppConfig) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

func (s *AppConfig) EnforceCategories() bool {
	return s.StrictCategories
}

func (s *AppConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}
