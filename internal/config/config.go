package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Laju-Ride-Hailing/service-rides/pkg/config"
)

// Routing provider names selectable at startup.
const (
	RoutingProviderGoogle = "google"
	RoutingProviderOSRM   = "osrm"
)

// RoutingConfig selects and configures the routing provider.
type RoutingConfig struct {
	Provider     string
	GoogleAPIKey string
	OSRMBaseURL  string
}

// MediaConfig configures the external media host used for file uploads.
type MediaConfig struct {
	UploadURL string
	APIKey    string
}

// SMSConfig configures the outbound SMS gateway.
type SMSConfig struct {
	Enabled    bool
	GatewayURL string
	APIKey     string
	SenderID   string
}

// ServiceConfig holds all configuration for the rides service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	DBConfig    config.DatabaseConfig
	JWTConfig   config.JWTConfig
	KafkaConfig config.KafkaConfig
	Routing     RoutingConfig
	Media       MediaConfig
	SMS         SMSConfig
}

// Load reads configuration from environment variables. Provider credentials
// are validated here so misconfiguration fails at startup, not on first use.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("RIDES")
	if err != nil {
		return nil, err
	}

	v.SetDefault("routing_provider", RoutingProviderGoogle)
	v.SetDefault("osrm_base_url", "http://localhost:5000")
	v.SetDefault("sms_enabled", false)

	dbCfg, err := config.LoadDatabaseConfig(v, "DB_NAME")
	if err != nil {
		return nil, err
	}
	jwtCfg, err := config.LoadJWTConfig(v)
	if err != nil {
		return nil, err
	}

	routing, err := loadRoutingConfig(v)
	if err != nil {
		return nil, err
	}
	media, err := loadMediaConfig(v)
	if err != nil {
		return nil, err
	}
	sms, err := loadSMSConfig(v)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:      config.GetAppEnv(v),
		DBConfig:    dbCfg,
		JWTConfig:   jwtCfg,
		KafkaConfig: config.LoadKafkaConfig(v),
		Routing:     routing,
		Media:       media,
		SMS:         sms,
	}, nil
}

func loadRoutingConfig(v *viper.Viper) (RoutingConfig, error) {
	cfg := RoutingConfig{
		Provider:     v.GetString("routing_provider"),
		GoogleAPIKey: v.GetString("google_api_key"),
		OSRMBaseURL:  v.GetString("osrm_base_url"),
	}

	switch cfg.Provider {
	case RoutingProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			return RoutingConfig{}, fmt.Errorf("GOOGLE_API_KEY is required when routing_provider=google")
		}
	case RoutingProviderOSRM:
		if cfg.OSRMBaseURL == "" {
			return RoutingConfig{}, fmt.Errorf("OSRM_BASE_URL is required when routing_provider=osrm")
		}
	default:
		return RoutingConfig{}, fmt.Errorf("unknown routing provider: %s", cfg.Provider)
	}
	return cfg, nil
}

func loadMediaConfig(v *viper.Viper) (MediaConfig, error) {
	cfg := MediaConfig{
		UploadURL: v.GetString("media_upload_url"),
		APIKey:    v.GetString("media_api_key"),
	}
	if cfg.UploadURL != "" && cfg.APIKey == "" {
		return MediaConfig{}, fmt.Errorf("MEDIA_API_KEY is required when MEDIA_UPLOAD_URL is set")
	}
	return cfg, nil
}

func loadSMSConfig(v *viper.Viper) (SMSConfig, error) {
	cfg := SMSConfig{
		Enabled:    v.GetBool("sms_enabled"),
		GatewayURL: v.GetString("sms_gateway_url"),
		APIKey:     v.GetString("sms_api_key"),
		SenderID:   v.GetString("sms_sender_id"),
	}
	if cfg.Enabled && (cfg.GatewayURL == "" || cfg.APIKey == "") {
		return SMSConfig{}, fmt.Errorf("SMS_GATEWAY_URL and SMS_API_KEY are required when sms_enabled=true")
	}
	return cfg, nil
}
