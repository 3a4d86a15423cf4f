package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
	Log     LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig configuración del backend remoto (fuente de verdad de todos los datos).
type APIConfig struct {
	BaseURL        string // ej. https://api.altovivo.app/api/v1
	TimeoutSeconds int    // timeout por petición HTTP
	MaxRetries     int    // reintentos para lecturas transitorias
	RetryBackoffMS int    // backoff base entre reintentos
}

// Timeout devuelve el timeout por petición como duración.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryBackoff devuelve el backoff base entre reintentos como duración.
func (c APIConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// Validate verifica que la URL base sea absoluta; sin backend no hay cliente.
func (c APIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("config: API_BASE_URL inválida: %q", c.BaseURL)
	}
	return nil
}

// SessionConfig configuración de la sesión persistida localmente.
type SessionConfig struct {
	File string // ruta del archivo de sesión (tokens + usuario)
}

// CacheConfig configuración del caché de lecturas.
type CacheConfig struct {
	MaxEntries int
	TTLMinutes int
}

// TTL devuelve el tiempo de vida de una entrada como duración.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LogConfig configuración de logging.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SESSION_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "altovivo-client"),
		},
		API: APIConfig{
			BaseURL:        getString(v, "API_BASE_URL", "http://localhost:8000/api/v1"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 15),
			MaxRetries:     getInt(v, "API_MAX_RETRIES", 2),
			RetryBackoffMS: getInt(v, "API_RETRY_BACKOFF_MS", 250),
		},
		Session: SessionConfig{
			File: getString(v, "SESSION_FILE", ".altovivo-session.json"),
		},
		Cache: CacheConfig{
			MaxEntries: getInt(v, "CACHE_MAX_ENTRIES", 512),
			TTLMinutes: getInt(v, "CACHE_TTL_MINUTES", 5),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}

	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
