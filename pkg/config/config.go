package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	Log  LogConfig
	JWT  JWTConfig
	HTTP HTTPConfig
	IST  ISTConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger estructurado.
type LogConfig struct {
	Level string
}

// JWTConfig configuración de JWT. Secret vacío deja la API sin autenticación.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int // tamaño máximo de las planillas subidas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit límite de cuerpo en bytes para fiber.
func (c HTTPConfig) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

// ISTConfig valores por defecto del motor de traslados; el request puede sobreescribirlos.
type ISTConfig struct {
	DefaultVariant       string
	SellThroughThreshold int    // 0-100
	DaysThreshold        int    // edad mínima en días
	NegativeNet          string // zero | passthrough
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, IST_SELL_THROUGH_THRESHOLD, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "ist-rebalancer"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "ist-rebalancer"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 50),
		},
		IST: ISTConfig{
			DefaultVariant:       getString(v, "IST_DEFAULT_VARIANT", "network"),
			SellThroughThreshold: getInt(v, "IST_SELL_THROUGH_THRESHOLD", 60),
			DaysThreshold:        getInt(v, "IST_DAYS_THRESHOLD", 30),
			NegativeNet:          getString(v, "IST_NEGATIVE_NET", "zero"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.IST.SellThroughThreshold < 0 || c.IST.SellThroughThreshold > 100 {
		return fmt.Errorf("config: IST_SELL_THROUGH_THRESHOLD fuera de rango (0-100): %d", c.IST.SellThroughThreshold)
	}
	if c.IST.DaysThreshold < 0 {
		return fmt.Errorf("config: IST_DAYS_THRESHOLD negativo: %d", c.IST.DaysThreshold)
	}
	switch c.IST.NegativeNet {
	case "zero", "passthrough":
	default:
		return fmt.Errorf("config: IST_NEGATIVE_NET inválido: %q", c.IST.NegativeNet)
	}
	if c.HTTP.BodyLimitMB <= 0 {
		return fmt.Errorf("config: HTTP_BODY_LIMIT_MB debe ser positivo")
	}
	return nil
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
