package ops

import (
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tradingapp/internal/identity"
	"tradingapp/internal/risk"
	"tradingapp/pkg/conn"
)

const (
	defaultAddr         = ":8000"
	defaultMode         = "release"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultShutdown     = 5 * time.Second
	defaultCurrency     = "USD"
	defaultAppName      = "tradingapp"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Risk      RiskConfig      `json:"risk"`
	Identity  identity.Config `json:"identity"`
	Profiling ProfilingConfig `json:"profiling"`
	Currency  CurrencyConfig  `json:"currency"`
}

// ServerConfig describes the HTTP listener. Durations use time.ParseDuration
// syntax.
type ServerConfig struct {
	Addr            string `json:"addr"`
	Mode            string `json:"mode"`
	ReadTimeout     string `json:"readTimeout"`
	WriteTimeout    string `json:"writeTimeout"`
	ShutdownTimeout string `json:"shutdownTimeout"`
}

// DatabaseConfig describes the ledger database. ConnMaxLifetime uses
// time.ParseDuration syntax.
type DatabaseConfig struct {
	conn.Option
	ConnMaxLifetime string `json:"connMaxLifetime"`
}

// RiskConfig describes the optional order limits.
type RiskConfig struct {
	KillSwitch       bool            `json:"killSwitch"`
	MaxOrderQuantity int64           `json:"maxOrderQuantity"`
	MaxOrderAmount   decimal.Decimal `json:"maxOrderAmount"`
	OrderRateLimit   int             `json:"orderRateLimit"`
	OrderRateWindow  string          `json:"orderRateWindow"`
}

// ProfilingConfig enables continuous profiling.
type ProfilingConfig struct {
	Enabled         bool              `json:"enabled"`
	ApplicationName string            `json:"applicationName"`
	ServerAddress   string            `json:"serverAddress"`
	Tags            map[string]string `json:"tags"`
}

// CurrencyConfig sets the ISO 4217 code used to display money.
type CurrencyConfig struct {
	Code string `json:"code"`
}

// Server is the resolved listener configuration.
type Server struct {
	Addr            string
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Server    Server
	Database  conn.Option
	Risk      risk.Config
	Identity  identity.Config
	Profiling ProfilingConfig
	Currency  string
}

// Load reads a JSON config file. An empty path yields the defaults.
func Load(path string) (Loaded, error) {
	var cfg FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, errors.Wrap(err, "read config")
		}
		if err := sonic.ConfigStd.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, errors.Wrap(err, "decode config")
		}
	}
	return cfg.resolve()
}

func (cfg FileConfig) resolve() (Loaded, error) {
	server, err := resolveServer(cfg.Server)
	if err != nil {
		return Loaded{}, err
	}
	riskCfg, err := resolveRisk(cfg.Risk)
	if err != nil {
		return Loaded{}, err
	}

	db := cfg.Database.Option
	if db.Driver == "" {
		db.Driver = conn.DriverPostgres
	}
	if db.ConnMaxLifetime, err = parseDuration("database connMaxLifetime", cfg.Database.ConnMaxLifetime, 0); err != nil {
		return Loaded{}, err
	}

	if b := cfg.Identity.SignupBalance; b != nil && b.IsNegative() {
		return Loaded{}, errors.New("identity signupBalance must be >= 0")
	}

	profiling := cfg.Profiling
	if profiling.ApplicationName == "" {
		profiling.ApplicationName = defaultAppName
	}
	if profiling.Enabled && profiling.ServerAddress == "" {
		return Loaded{}, errors.New("profiling serverAddress is empty")
	}

	currency := strings.ToUpper(strings.TrimSpace(cfg.Currency.Code))
	if currency == "" {
		currency = defaultCurrency
	}

	return Loaded{
		Server:    server,
		Database:  db,
		Risk:      riskCfg,
		Identity:  cfg.Identity,
		Profiling: profiling,
		Currency:  currency,
	}, nil
}

func resolveServer(cfg ServerConfig) (Server, error) {
	server := Server{
		Addr:            cfg.Addr,
		Mode:            cfg.Mode,
		ReadTimeout:     defaultReadTimeout,
		WriteTimeout:    defaultWriteTimeout,
		ShutdownTimeout: defaultShutdown,
	}
	if server.Addr == "" {
		server.Addr = defaultAddr
	}
	if server.Mode == "" {
		server.Mode = defaultMode
	}
	var err error
	if server.ReadTimeout, err = parseDuration("server readTimeout", cfg.ReadTimeout, server.ReadTimeout); err != nil {
		return Server{}, err
	}
	if server.WriteTimeout, err = parseDuration("server writeTimeout", cfg.WriteTimeout, server.WriteTimeout); err != nil {
		return Server{}, err
	}
	if server.ShutdownTimeout, err = parseDuration("server shutdownTimeout", cfg.ShutdownTimeout, server.ShutdownTimeout); err != nil {
		return Server{}, err
	}
	return server, nil
}

func resolveRisk(cfg RiskConfig) (risk.Config, error) {
	if cfg.MaxOrderQuantity < 0 {
		return risk.Config{}, errors.New("risk maxOrderQuantity must be >= 0")
	}
	if cfg.OrderRateLimit < 0 {
		return risk.Config{}, errors.New("risk orderRateLimit must be >= 0")
	}
	if cfg.MaxOrderAmount.IsNegative() {
		return risk.Config{}, errors.New("risk maxOrderAmount must be >= 0")
	}
	window, err := parseDuration("risk orderRateWindow", cfg.OrderRateWindow, 0)
	if err != nil {
		return risk.Config{}, err
	}
	if cfg.OrderRateLimit > 0 && window <= 0 {
		window = time.Minute
	}
	return risk.Config{
		KillSwitch:       cfg.KillSwitch,
		MaxOrderQuantity: cfg.MaxOrderQuantity,
		MaxOrderAmount:   cfg.MaxOrderAmount,
		OrderRateLimit:   cfg.OrderRateLimit,
		OrderRateWindow:  window,
	}, nil
}

func parseDuration(name, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", name)
	}
	if d < 0 {
		return 0, errors.Errorf("%s must be >= 0", name)
	}
	return d, nil
}
