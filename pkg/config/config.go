package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string `validate:"required"` // development, staging, production
	Name        string `validate:"required"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`
	OpenBrowser bool   // abrir el navegador al iniciar (uso local)
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int `validate:"min=1,max=65535"`
	BodyLimitMB int `validate:"min=1"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL devuelve la URL local del formulario de carga.
func (c HTTPConfig) URL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d/", host, c.Port)
}

// ReportConfig configuración del pipeline de reportes.
type ReportConfig struct {
	UploadDir         string `validate:"required"`
	OutputName        string `validate:"required"`
	ProductNamePolicy string `validate:"oneof=raw placeholder"`
	DefaultFormat     string `validate:"oneof=xlsx pdf"`
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, REPORT_UPLOAD_DIR, etc.
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
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye y valida la configuración a partir de una instancia de Viper.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "daily-inventory"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			OpenBrowser: getBool(v, "OPEN_BROWSER", false),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 5000),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 64),
		},
		Report: ReportConfig{
			UploadDir:         getString(v, "REPORT_UPLOAD_DIR", "./uploads"),
			OutputName:        getString(v, "REPORT_OUTPUT_NAME", "final_combined_report_updated"),
			ProductNamePolicy: strings.ToLower(getString(v, "REPORT_PRODUCT_NAME_POLICY", "placeholder")),
			DefaultFormat:     strings.ToLower(getString(v, "REPORT_DEFAULT_FORMAT", "xlsx")),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
