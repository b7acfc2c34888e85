package main

import (
	"errors"
	"fmt"
	"os"

	"blog/domain"
	"blog/handler"
	"blog/store"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	flagEnv      = "env"
	flagAddr     = "addr"
	flagDBDriver = "db-driver"
	flagDBURL    = "db-url"
	flagDBName   = "db-name"

	devAddress       = ":8080"
	defaultCertCache = "/var/www/.cache"
)

func defaultConfig() domain.Config {
	return domain.Config{
		Environment: domain.ProEnv,
		DBDriver:    domain.DriverMongo,
		DBName:      store.DefaultMongoDatabase,
		PageTitle:   handler.DefaultPageTitle,
		CertCache:   defaultCertCache,
	}
}

// loadConfig layers defaults, the YAML file at path, the environment and
// the flags that were set explicitly, in that order.
func loadConfig(path string, flags *pflag.FlagSet) (domain.Config, error) {
	cfg := defaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("error reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
		}
	}

	for env, field := range map[string]*string{
		"ENV":            &cfg.Environment,
		"ADDRESS_LISTEN": &cfg.Address,
		"DB_DRIVER":      &cfg.DBDriver,
		"DB_URL":         &cfg.DBURL,
		"DB_NAME":        &cfg.DBName,
		"PAGE_TITLE":     &cfg.PageTitle,
		"WHITELIST_HOST": &cfg.TLSHost,
		"CERT_CACHE":     &cfg.CertCache,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	if flags != nil {
		for name, field := range map[string]*string{
			flagEnv:      &cfg.Environment,
			flagAddr:     &cfg.Address,
			flagDBDriver: &cfg.DBDriver,
			flagDBURL:    &cfg.DBURL,
			flagDBName:   &cfg.DBName,
		} {
			if !flags.Changed(name) {
				continue
			}
			v, err := flags.GetString(name)
			if err != nil {
				return cfg, err
			}
			*field = v
		}
	}

	return cfg, finishConfig(&cfg)
}

func finishConfig(cfg *domain.Config) error {
	if cfg.Environment != domain.DevEnv && cfg.Environment != domain.ProEnv {
		return fmt.Errorf("unknown environment %q", cfg.Environment)
	}
	if cfg.IsDev() && cfg.Address == "" {
		cfg.Address = devAddress
	}

	switch cfg.DBDriver {
	case domain.DriverMongo:
		if cfg.DBURL == "" {
			cfg.DBURL = store.DefaultMongoURL
		}
	case domain.DriverSQLite:
		if cfg.DBURL == "" {
			cfg.DBURL = store.DefaultSQLiteURL
		}
	case domain.DriverPostgres:
		if cfg.DBURL == "" {
			return errors.New("the postgres driver needs a connection string")
		}
	case domain.DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
	return nil
}
