// Package config loads process configuration from environment variables into
// env-tagged structs.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct parsing). Each struct type is parsed at
// most once per process and served from an in-memory cache afterwards, which
// matches how the intake service treats configuration: read once at startup,
// read-only afterwards, re-read only on restart.
//
//	var cfg intake.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// ResetCache and ForceReloadConfig exist for tests that mutate the
// environment between cases.
package config
