// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/voter-summary/roll"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	FeedURL         string
	AccessSecret    string
	Elections       []string
	RefreshInterval time.Duration
	S3Region        string
	S3Endpoint      string
	S3PathStyle     bool
}

const defaultSQLitePath = "voter-summary.db"

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var elections, refresh string

	fs := flag.NewFlagSet("voter-summary", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Feed
	fs.StringVar(&cfg.FeedURL, "feed", "", "Voter roll URL (https://, s3://bucket/key or a file path)")
	fs.StringVar(&elections, "elections", "", "Election catalog, '|' separated")
	fs.StringVar(&refresh, "refresh", "", "Feed refresh interval (e.g. 6h); empty loads once")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "Region of the S3 feed bucket")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "Custom S3 endpoint (MinIO)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AccessSecret, "access-secret", "", "Secret behind export and refresh access keys (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if cfg.FeedURL == "" {
		cfg.FeedURL = os.Getenv("FEED_URL")
	}
	if cfg.FeedURL == "" {
		return Config{}, errors.New("feed URL required (use -feed or FEED_URL env)")
	}

	if elections == "" {
		elections = os.Getenv("ELECTIONS")
	}
	cfg.Elections = splitElections(elections)
	if len(cfg.Elections) == 0 {
		cfg.Elections = append([]string(nil), roll.DefaultElections...)
	}

	if refresh == "" {
		refresh = os.Getenv("REFRESH_INTERVAL")
	}
	if refresh != "" {
		d, err := time.ParseDuration(refresh)
		if err != nil || d < 0 {
			return Config{}, errors.New("invalid refresh interval")
		}
		cfg.RefreshInterval = d
	}

	if cfg.S3Region == "" {
		cfg.S3Region = os.Getenv("FEED_S3_REGION")
	}
	if cfg.S3Endpoint == "" {
		cfg.S3Endpoint = os.Getenv("FEED_S3_ENDPOINT")
	}
	cfg.S3PathStyle = strings.EqualFold(os.Getenv("FEED_S3_PATH_STYLE"), "true") || cfg.S3Endpoint != ""

	// Secrets - MUST be provided
	if cfg.AccessSecret == "" {
		cfg.AccessSecret = os.Getenv("ACCESS_SECRET")
	}
	if cfg.AccessSecret == "" {
		return Config{}, errors.New("ACCESS_SECRET required")
	}

	return cfg, nil
}

func splitElections(s string) []string {
	var out []string
	for _, name := range strings.Split(s, "|") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
