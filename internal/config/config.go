package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Pricing  PricingConfig
	Cart     CartConfig
	Notify   NotifyConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PricingConfig struct {
	ShippingFee float64
	TaxRate     float64
}

type CartConfig struct {
	KeyPrefix      string
	OrderKeyPrefix string
}

type NotifyConfig struct {
	TTL time.Duration
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SHIPPING_FLAT_FEE", 1500.0)
	viper.SetDefault("TAX_RATE", 0.075)
	viper.SetDefault("CART_KEY_PREFIX", "cart")
	viper.SetDefault("ORDER_KEY_PREFIX", "checkout")
	viper.SetDefault("NOTIFY_TTL_SECONDS", 3)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Pricing: PricingConfig{
			ShippingFee: viper.GetFloat64("SHIPPING_FLAT_FEE"),
			TaxRate:     viper.GetFloat64("TAX_RATE"),
		},
		Cart: CartConfig{
			KeyPrefix:      viper.GetString("CART_KEY_PREFIX"),
			OrderKeyPrefix: viper.GetString("ORDER_KEY_PREFIX"),
		},
		Notify: NotifyConfig{
			TTL: time.Duration(viper.GetInt("NOTIFY_TTL_SECONDS")) * time.Second,
		},
	}
}
