package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL settings shared by all services.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
}

// KafkaConfig holds event bus settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// Load creates a viper instance bound to environment variables with the
// given prefix (e.g. prefix "RIDES" maps RIDES_DB_HOST → db_host).
func Load(prefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "laju-")

	return v, nil
}

// GetAppEnv returns the application environment name.
func GetAppEnv(v *viper.Viper) string {
	return v.GetString("app_env")
}

// GetServicePort returns the listen address for the named port key,
// normalized to the ":8080" form.
func GetServicePort(v *viper.Viper, key string) string {
	port := v.GetString(strings.ToLower(key))
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

// LoadDatabaseConfig reads database settings; dbNameKey names the env var
// holding this service's database name.
func LoadDatabaseConfig(v *viper.Viper, dbNameKey string) (DatabaseConfig, error) {
	cfg := DatabaseConfig{
		Host:     v.GetString("db_host"),
		Port:     v.GetString("db_port"),
		User:     v.GetString("db_user"),
		Password: v.GetString("db_password"),
		DBName:   v.GetString(strings.ToLower(dbNameKey)),
		SSLMode:  v.GetString("db_sslmode"),
	}
	if cfg.DBName == "" {
		return DatabaseConfig{}, fmt.Errorf("%s is required", dbNameKey)
	}
	return cfg, nil
}

// LoadJWTConfig reads token settings; the secret is mandatory.
func LoadJWTConfig(v *viper.Viper) (JWTConfig, error) {
	secret := v.GetString("jwt_secret")
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("JWT_SECRET is required")
	}
	return JWTConfig{Secret: secret}, nil
}

// LoadKafkaConfig reads event bus settings.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	return KafkaConfig{
		Brokers:     strings.Split(v.GetString("kafka_brokers"), ","),
		GroupPrefix: v.GetString("kafka_group_prefix"),
	}
}
