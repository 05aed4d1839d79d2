package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Store     StoreConfig
	DB        DBConfig
	Ledger    LedgerConfig
	Valuation ValuationConfig
	MIS       MISConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío = sin /swagger
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel del logger estructurado.
type LogConfig struct {
	Level string
}

// StoreConfig selección del almacenamiento y arranque.
type StoreConfig struct {
	Driver      string // postgres | memory
	Migrate     bool   // aplicar migraciones al iniciar (solo postgres)
	SeedOnStart bool   // cargar datos de ejemplo si el catálogo está vacío
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL     string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string con URL encoding para caracteres especiales de la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// LedgerConfig comportamiento del registro de movimientos.
type LedgerConfig struct {
	StrictItems bool // itemId inexistente rechaza el movimiento completo
}

// ValuationConfig valores de costo.
type ValuationConfig struct {
	DefaultUnitCost decimal.Decimal
}

// MISConfig parámetros del reporte MIS.
type MISConfig struct {
	WindowDays   int
	SummaryTopN  int
	VelocityTopN int
}

// Window ventana de rotación y stock muerto.
func (c MISConfig) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORE_DRIVER, DB_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	unitCost, err := decimal.NewFromString(v.GetString("VALUATION_DEFAULT_UNIT_COST"))
	if err != nil {
		return nil, fmt.Errorf("VALUATION_DEFAULT_UNIT_COST: %w", err)
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("VALUATION_DEFAULT_UNIT_COST no puede ser negativo")
	}

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			SwaggerFile: v.GetString("SWAGGER_FILE"),
		},
		Log: LogConfig{Level: v.GetString("LOG_LEVEL")},
		Store: StoreConfig{
			Driver:      strings.ToLower(v.GetString("STORE_DRIVER")),
			Migrate:     v.GetBool("DB_MIGRATE"),
			SeedOnStart: v.GetBool("SEED_ON_START"),
		},
		DB: DBConfig{
			DatabaseURL:     v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt32("DB_MAX_CONNS"),
			MinConns:        v.GetInt32("DB_MIN_CONNS"),
			MaxConnLifetime: v.GetDuration("DB_MAX_CONN_LIFETIME"),
			MaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
		},
		Ledger:    LedgerConfig{StrictItems: v.GetBool("LEDGER_STRICT_ITEMS")},
		Valuation: ValuationConfig{DefaultUnitCost: unitCost},
		MIS: MISConfig{
			WindowDays:   v.GetInt("MIS_WINDOW_DAYS"),
			SummaryTopN:  v.GetInt("MIS_SUMMARY_TOP_N"),
			VelocityTopN: v.GetInt("MIS_VELOCITY_TOP_N"),
		},
	}

	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER inválido: %q (postgres | memory)", cfg.Store.Driver)
	}
	if cfg.MIS.WindowDays <= 0 {
		return nil, fmt.Errorf("MIS_WINDOW_DAYS debe ser positivo")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "bodega-api")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("SWAGGER_FILE", "./docs/swagger.json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "bodega")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 30*time.Minute)
	v.SetDefault("LEDGER_STRICT_ITEMS", false)
	v.SetDefault("VALUATION_DEFAULT_UNIT_COST", "10")
	v.SetDefault("MIS_WINDOW_DAYS", 90)
	v.SetDefault("MIS_SUMMARY_TOP_N", 10)
	v.SetDefault("MIS_VELOCITY_TOP_N", 5)
}
