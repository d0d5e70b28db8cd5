package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio. Se lee de un archivo
// YAML opcional y de variables de entorno; el entorno pisa al archivo.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type AuthConfig struct {
	// JWTSecret vacío deja el servicio en modo dev: la identidad viene del
	// header X-Debug-User-ID.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load arma la configuración. path puede ser vacío; en ese caso solo se
// usan variables de entorno y defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "zoo_registry")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.BindEnv("server.port", "HTTP_PORT")                //nolint:errcheck
	v.BindEnv("database.host", "DATABASE_HOST")          //nolint:errcheck
	v.BindEnv("database.port", "DATABASE_PORT")          //nolint:errcheck
	v.BindEnv("database.user", "DATABASE_USER")          //nolint:errcheck
	v.BindEnv("database.password", "DATABASE_PASSWORD")  //nolint:errcheck
	v.BindEnv("database.name", "DATABASE_NAME")          //nolint:errcheck
	v.BindEnv("database.sslmode", "DATABASE_SSLMODE")    //nolint:errcheck
	v.BindEnv("smtp.enabled", "SMTP_ENABLED")            //nolint:errcheck
	v.BindEnv("smtp.host", "SMTP_HOST")                  //nolint:errcheck
	v.BindEnv("smtp.port", "SMTP_PORT")                  //nolint:errcheck
	v.BindEnv("smtp.username", "SMTP_USERNAME")          //nolint:errcheck
	v.BindEnv("smtp.password", "SMTP_PASSWORD")          //nolint:errcheck
	v.BindEnv("smtp.from", "SMTP_FROM")                  //nolint:errcheck
	v.BindEnv("smtp.to", "SMTP_TO")                      //nolint:errcheck
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")      //nolint:errcheck
	v.BindEnv("log.level", "LOG_LEVEL")                  //nolint:errcheck
	v.BindEnv("log.format", "LOG_FORMAT")                //nolint:errcheck

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.SMTP.Enabled && (cfg.SMTP.Host == "" || cfg.SMTP.From == "" || cfg.SMTP.To == "") {
		return nil, fmt.Errorf("smtp enabled but host/from/to incomplete")
	}

	return &cfg, nil
}

// DSN devuelve la cadena de conexión key=value que entiende pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// URL devuelve la misma conexión en formato URL, que es lo que pide
// golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}
