// Package config reads server settings from flags, GOVERNANCE_* environment
// variables, an optional .env file and an optional JSON config file.
package config

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Storage       string
	DBDSN         string
	DataFile      string
	CatalogPath   string
	ServerPort    string
	SessionSecret string
	BackupDir     string
}

func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet("pp-governance", flag.ContinueOnError)
	_ = fs.String("config", "", "config file (optional), json format")
	fs.StringVar(&cfg.Storage, "storage", StorageFile, "where projects are kept: file or postgres")
	fs.StringVar(&cfg.DBDSN, "db-dsn", "", "postgres connection string")
	fs.StringVar(&cfg.DataFile, "data-file", "data/governance.json", "snapshot file for file storage")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "standards catalog yaml, leave blank for the built-in one")
	fs.StringVar(&cfg.ServerPort, "port", "8080", "http listen port")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "cookie session secret")
	fs.StringVar(&cfg.BackupDir, "backup-dir", "", "directory for snapshot backups, blank disables them")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("GOVERNANCE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithAllowMissingConfigFile(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	switch cfg.Storage {
	case StorageFile:
		if cfg.DataFile == "" {
			return nil, errors.New("GOVERNANCE_DATA_FILE is not set")
		}
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, errors.New("GOVERNANCE_DB_DSN is not set")
		}
	default:
		return nil, errors.Errorf("unknown storage %q", cfg.Storage)
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("GOVERNANCE_SESSION_SECRET is not set")
	}

	return cfg, nil
}
