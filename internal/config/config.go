package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/murkotick/product-form-service/internal/app/productform/domain"
)

// Config holds all application configuration
type Config struct {
	App              AppConfig
	GRPC             GRPCConfig
	Ops              OpsConfig
	Spanner          SpannerConfig
	Storage          StorageConfig
	Log              LogConfig
	Engine           EngineConfig
	CheckoutDefaults CheckoutDefaultsConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type GRPCConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// OpsConfig is the health and metrics HTTP listener.
type OpsConfig struct {
	Addr string
}

type SpannerConfig struct {
	Database string
}

// StorageConfig configures the S3 bucket product images are uploaded to.
type StorageConfig struct {
	Bucket       string
	Region       string
	Endpoint     string
	PublicURL    string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type EngineConfig struct {
	MaxLoadAttempts    int
	LoadTimeout        time.Duration
	SaveHandlerTimeout time.Duration // per handler
	SaveAllTimeout     time.Duration // whole run, validation included
}

// CheckoutDefaultsConfig is applied to products without checkout settings.
type CheckoutDefaultsConfig struct {
	DefaultPaymentMethod string
	PixGateway           string
	CreditCardGateway    string
}

// Settings converts the configured defaults into domain settings.
func (c CheckoutDefaultsConfig) Settings() domain.CheckoutSettings {
	s := domain.DefaultCheckoutSettings()
	s.DefaultPaymentMethod = domain.PaymentMethod(c.DefaultPaymentMethod)
	s.PixGateway = domain.Gateway(c.PixGateway)
	s.CreditCardGateway = domain.Gateway(c.CreditCardGateway)
	return s
}

// Load reads config.toml (optional) and PFS_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("PFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		GRPC: GRPCConfig{
			Addr:            v.GetString("grpc.addr"),
			ShutdownTimeout: v.GetDuration("grpc.shutdown_timeout"),
		},
		Ops: OpsConfig{
			Addr: v.GetString("ops.addr"),
		},
		Spanner: SpannerConfig{
			Database: v.GetString("spanner.database"),
		},
		Storage: StorageConfig{
			Bucket:       v.GetString("storage.bucket"),
			Region:       v.GetString("storage.region"),
			Endpoint:     v.GetString("storage.endpoint"),
			PublicURL:    v.GetString("storage.public_url"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Engine: EngineConfig{
			MaxLoadAttempts:    v.GetInt("engine.max_load_attempts"),
			LoadTimeout:        v.GetDuration("engine.load_timeout"),
			SaveHandlerTimeout: v.GetDuration("engine.save_handler_timeout"),
			SaveAllTimeout:     v.GetDuration("engine.save_all_timeout"),
		},
		CheckoutDefaults: CheckoutDefaultsConfig{
			DefaultPaymentMethod: v.GetString("checkout_defaults.default_payment_method"),
			PixGateway:           v.GetString("checkout_defaults.pix_gateway"),
			CreditCardGateway:    v.GetString("checkout_defaults.credit_card_gateway"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "product-form-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("grpc.addr", ":50051")
	v.SetDefault("grpc.shutdown_timeout", 10*time.Second)
	v.SetDefault("ops.addr", ":8081")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("engine.max_load_attempts", 3)
	v.SetDefault("engine.load_timeout", 15*time.Second)
	v.SetDefault("engine.save_handler_timeout", 20*time.Second)
	v.SetDefault("engine.save_all_timeout", 90*time.Second)
	v.SetDefault("checkout_defaults.default_payment_method", string(domain.PaymentPix))
	v.SetDefault("checkout_defaults.pix_gateway", string(domain.GatewayMercadoPago))
	v.SetDefault("checkout_defaults.credit_card_gateway", string(domain.GatewayMercadoPago))
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Spanner.Database == "" {
		return fmt.Errorf("spanner.database is required")
	}
	if c.Engine.MaxLoadAttempts < 1 {
		return fmt.Errorf("engine.max_load_attempts must be at least 1")
	}
	switch domain.PaymentMethod(c.CheckoutDefaults.DefaultPaymentMethod) {
	case domain.PaymentPix, domain.PaymentCreditCard:
	default:
		return fmt.Errorf("checkout_defaults.default_payment_method %q is not supported", c.CheckoutDefaults.DefaultPaymentMethod)
	}
	switch domain.Gateway(c.CheckoutDefaults.PixGateway) {
	case domain.GatewayMercadoPago, domain.GatewayPushinPay, domain.GatewayAsaas:
	default:
		return fmt.Errorf("checkout_defaults.pix_gateway %q is not supported", c.CheckoutDefaults.PixGateway)
	}
	switch domain.Gateway(c.CheckoutDefaults.CreditCardGateway) {
	case domain.GatewayMercadoPago, domain.GatewayStripe, domain.GatewayAsaas:
	default:
		return fmt.Errorf("checkout_defaults.credit_card_gateway %q is not supported", c.CheckoutDefaults.CreditCardGateway)
	}
	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
