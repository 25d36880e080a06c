package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Redis      Redis
	ContentAPI ContentAPI
	Library    Library
	Session    Session
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Addr     string
	Password string
}

// ContentAPI configures the content store the edit sessions persist through.
// Mode "remote" drives an external content API; "local" persists through this
// service's own database.
type ContentAPI struct {
	Mode        string
	BaseURL     string
	AccessToken string
}

type Library struct {
	Mode        string
	BaseURL     string
	AccessToken string
	CacheTTL    time.Duration
}

type Session struct {
	DebounceInterval time.Duration
	RequestTimeout   time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CONTENT_API_MODE", "local")
	viper.SetDefault("LIBRARY_MODE", "local")
	viper.SetDefault("LIBRARY_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 400)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")

	config.ContentAPI.Mode = viper.GetString("CONTENT_API_MODE")
	config.ContentAPI.BaseURL = viper.GetString("CONTENT_API_BASE_URL")
	config.ContentAPI.AccessToken = viper.GetString("CONTENT_API_ACCESS_TOKEN")

	config.Library.Mode = viper.GetString("LIBRARY_MODE")
	config.Library.BaseURL = viper.GetString("LIBRARY_BASE_URL")
	config.Library.AccessToken = viper.GetString("LIBRARY_ACCESS_TOKEN")
	config.Library.CacheTTL = time.Duration(viper.GetInt("LIBRARY_CACHE_TTL_SECONDS")) * time.Second

	config.Session.DebounceInterval = time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond
	config.Session.RequestTimeout = time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second

	log.Info().
		Str("port", config.Server.Port).
		Str("content_api_mode", config.ContentAPI.Mode).
		Str("library_mode", config.Library.Mode).
		Msg("Config loaded")
	return &config, nil
}
