package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// BaseURL es la URL pública del servicio, usada para armar los links
		// de verify/confirm que se devuelven al navegador.
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"` // postgres | memory
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Session struct {
		// JWTSecret es el secreto compartido con la plataforma para validar
		// el token de sesión. Obligatorio.
		JWTSecret string `yaml:"jwt_secret"`
		TTL       string `yaml:"ttl"`
		Flags     struct {
			Kind  string `yaml:"kind"` // memory | redis
			Redis struct {
				Addr   string `yaml:"addr"`
				DB     int    `yaml:"db"`
				Prefix string `yaml:"prefix"`
			} `yaml:"redis"`
		} `yaml:"flags"`
	} `yaml:"session"`

	Gate struct {
		// UserAttributeOverride: nombre del header con el username afirmado
		// por el SSO. Si está vacío se usa el lookup de user-info.
		UserAttributeOverride string `yaml:"user_attribute_override"`
		// UserInfoURL: endpoint del plugin de autenticación externo.
		UserInfoURL string `yaml:"userinfo_url"`
		// CourseURL: template (fmt con %d) hacia la vista del curso en la
		// plataforma, para la continue URL del flujo de confirmación.
		CourseURL string `yaml:"course_url"`
	} `yaml:"gate"`

	CSRF struct {
		HeaderName string `yaml:"header_name"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"csrf"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Session.TTL == "" {
		c.Session.TTL = "12h"
	}
	if c.Session.Flags.Kind == "" {
		c.Session.Flags.Kind = "memory"
	}
	if c.CSRF.HeaderName == "" {
		c.CSRF.HeaderName = "X-CSRF-Token"
	}
	if c.CSRF.CookieName == "" {
		c.CSRF.CookieName = "csrf_token"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	// Overrides por env
	c.applyEnvOverrides()

	// validate string durations
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, err
		}
	}
	if _, err := time.ParseDuration(c.Session.TTL); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SessionTTL retorna el TTL de sesión ya parseado.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// Validate chequea los valores críticos de configuración.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.JWTSecret) == "" {
		return errors.New("config: session.jwt_secret is required")
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.DSN) == "" {
		return errors.New("config: storage.dsn is required for the postgres driver")
	}
	if c.Gate.UserAttributeOverride == "" && c.Gate.UserInfoURL == "" {
		return errors.New("config: gate needs user_attribute_override or userinfo_url")
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("SERVER_BASE_URL"); ok {
		c.Server.BaseURL = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// SESSION
	if v, ok := getEnvStr("SESSION_JWT_SECRET"); ok {
		c.Session.JWTSecret = v
	}
	if v, ok := getEnvStr("SESSION_TTL"); ok {
		c.Session.TTL = v
	}
	if v, ok := getEnvStr("SESSION_FLAGS_KIND"); ok {
		c.Session.Flags.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Session.Flags.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Session.Flags.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Session.Flags.Redis.Prefix = v
	}

	// GATE
	if v, ok := getEnvStr("GATE_USER_ATTRIBUTE"); ok {
		c.Gate.UserAttributeOverride = v
	}
	if v, ok := getEnvStr("GATE_USERINFO_URL"); ok {
		c.Gate.UserInfoURL = v
	}
	if v, ok := getEnvStr("GATE_COURSE_URL"); ok {
		c.Gate.CourseURL = v
	}

	// CSRF
	if v, ok := getEnvStr("CSRF_HEADER_NAME"); ok {
		c.CSRF.HeaderName = v
	}
	if v, ok := getEnvStr("CSRF_COOKIE_NAME"); ok {
		c.CSRF.CookieName = v
	}

	// LOG
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
}
