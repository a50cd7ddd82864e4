package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	AdminKey        string        `mapstructure:"ADMIN_KEY"`
	AIURL           string        `mapstructure:"AI_URL"`
	AIModelVersion  string        `mapstructure:"AI_MODEL_VERSION"`
	AISimulateDelay bool          `mapstructure:"AI_SIMULATE_DELAY"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("AI_MODEL_VERSION", "oba-nlp-az-v2")
	v.SetDefault("AI_SIMULATE_DELAY", true)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
