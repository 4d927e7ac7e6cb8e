package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// ClientConfig drives the storefront terminal client.
type ClientConfig struct {
	APIBaseURL      string
	HTTPTimeout     time.Duration // 0 waits forever
	MaxQuantity     int           // 0 means unbounded
	IdempotencyKeys bool
	Locale          string
	Currency        string
	PriceSuffix     string
}

type CatalogConfig struct {
	ProductsFile string
	DatabaseDSN  string // empty selects the file source
	RefreshSpec  string // cron spec for snapshot refresh
}

type ServerConfig struct {
	Port             string
	CORSAllowOrigins []string
}

type GatewayConfig struct {
	ListenPort        string
	ProductServiceURL string
	OrderServiceURL   string
}

type Config struct {
	Log     LogConfig
	Client  ClientConfig
	Catalog CatalogConfig
	Gateway GatewayConfig
	Product ServerConfig
	Order   ServerConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("client.api_base_url", "http://localhost:8080")
	v.SetDefault("client.http_timeout", 10*time.Second)
	v.SetDefault("client.max_quantity", 0)
	v.SetDefault("client.idempotency_keys", true)
	v.SetDefault("client.locale", "ja")
	v.SetDefault("client.currency", "¥")
	v.SetDefault("client.price_suffix", " / 月")

	v.SetDefault("catalog.products_file", "data/products.json")
	v.SetDefault("catalog.database_dsn", "")
	v.SetDefault("catalog.refresh_spec", "@every 1m")

	v.SetDefault("gateway.listen_port", "8080")
	v.SetDefault("gateway.product_service_url", "http://localhost:8082")
	v.SetDefault("gateway.order_service_url", "http://localhost:8084")

	origins := []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:8080"}
	v.SetDefault("product.port", "8082")
	v.SetDefault("product.cors_allow_origins", origins)
	v.SetDefault("order.port", "8084")
	v.SetDefault("order.cors_allow_origins", origins)
}

// Load reads configuration. Priority (highest first):
// STOREFRONT_* environment variables, storefront.yaml, built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Client: ClientConfig{
			APIBaseURL:      strings.TrimRight(v.GetString("client.api_base_url"), "/"),
			HTTPTimeout:     v.GetDuration("client.http_timeout"),
			MaxQuantity:     v.GetInt("client.max_quantity"),
			IdempotencyKeys: v.GetBool("client.idempotency_keys"),
			Locale:          v.GetString("client.locale"),
			Currency:        v.GetString("client.currency"),
			PriceSuffix:     v.GetString("client.price_suffix"),
		},
		Catalog: CatalogConfig{
			ProductsFile: v.GetString("catalog.products_file"),
			DatabaseDSN:  v.GetString("catalog.database_dsn"),
			RefreshSpec:  v.GetString("catalog.refresh_spec"),
		},
		Gateway: GatewayConfig{
			ListenPort:        v.GetString("gateway.listen_port"),
			ProductServiceURL: v.GetString("gateway.product_service_url"),
			OrderServiceURL:   v.GetString("gateway.order_service_url"),
		},
		Product: ServerConfig{
			Port:             v.GetString("product.port"),
			CORSAllowOrigins: v.GetStringSlice("product.cors_allow_origins"),
		},
		Order: ServerConfig{
			Port:             v.GetString("order.port"),
			CORSAllowOrigins: v.GetStringSlice("order.cors_allow_origins"),
		},
	}
}

// Addr turns a bare port into a listen address.
func (s ServerConfig) Addr() string {
	if strings.HasPrefix(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

// GetEnv returns the environment variable or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
