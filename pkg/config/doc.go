// Package config loads application configuration from environment
// variables into tagged structs.
//
// It combines github.com/joho/godotenv (optional .env file) with
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each
// configuration type so it is parsed once per process:
//
//	type RedisConfig struct {
//	    URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests that mutate the environment between cases should call Reset to
// drop the cache.
package config
