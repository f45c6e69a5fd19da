package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ChainConfig holds the registry contract and signer configuration
type ChainConfig struct {
	RPCURL          string       `mapstructure:"rpc_url"`
	ChainID         domain.Chain `mapstructure:"chain_id"`
	ContractAddress string       `mapstructure:"contract_address"`
	// HashKeyedRegistry is set when the registry keys films by keccak256(filmId)
	// instead of an incrementing id
	HashKeyedRegistry      bool          `mapstructure:"hash_keyed_registry"`
	SignerPrivateKey       string        `mapstructure:"signer_private_key"`
	ConfirmationTimeout    time.Duration `mapstructure:"confirmation_timeout"`
	VerificationRetryDelay time.Duration `mapstructure:"verification_retry_delay"`
	RPCRateLimit           RPCRateLimit  `mapstructure:"rpc_rate_limit"`
}

// RPCRateLimit throttles calls to the RPC endpoint. Zero disables the limit.
type RPCRateLimit struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RoyaltyConfig holds the platform share appended to every royalty split
type RoyaltyConfig struct {
	PlatformRecipient   string `mapstructure:"platform_recipient"`
	PlatformBasisPoints uint16 `mapstructure:"platform_basis_points"`
}

// OwnershipConfig holds ownership cache configuration
type OwnershipConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// ReverificationConfig holds the background purchase re-verification configuration
type ReverificationConfig struct {
	Worker          WorkerConfig  `mapstructure:"worker"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// ReconcileConfig holds configuration for the reconciler sweeps
type ReconcileConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	PendingGrace time.Duration `mapstructure:"pending_grace"`
	BatchSize    int           `mapstructure:"batch_size"`
	Worker       WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	NATS           NATSConfig           `mapstructure:"nats"`
	Chain          ChainConfig          `mapstructure:"chain"`
	Royalty        RoyaltyConfig        `mapstructure:"royalty"`
	Ownership      OwnershipConfig      `mapstructure:"ownership"`
	Reverification ReverificationConfig `mapstructure:"reverification"`
	Auth           AuthConfig           `mapstructure:"auth"`
}

// ReconcilerConfig holds configuration for the reconciler
type ReconcilerConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig       `mapstructure:"database"`
	NATS           NATSConfig           `mapstructure:"nats"`
	Chain          ChainConfig          `mapstructure:"chain"`
	Ownership      OwnershipConfig      `mapstructure:"ownership"`
	Reverification ReverificationConfig `mapstructure:"reverification"`
	Reconcile      ReconcileConfig      `mapstructure:"reconcile"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 120)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Chain.Validate(); err != nil {
		return nil, err
	}
	if err := config.Royalty.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadReconcilerConfig loads configuration for the reconciler
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("reconcile.interval", "1m")
	v.SetDefault("reconcile.pending_grace", "10m")
	v.SetDefault("reconcile.batch_size", 100)
	v.SetDefault("reconcile.worker.pool_size", 5)
	v.SetDefault("reconcile.worker.queue_size", 500)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ReconcilerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Chain.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "RIGHTS_EVENTS")
	v.SetDefault("chain.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("chain.confirmation_timeout", domain.DEFAULT_CONFIRMATION_TIMEOUT.String())
	v.SetDefault("chain.verification_retry_delay", domain.DEFAULT_VERIFICATION_RETRY_DELAY.String())
	v.SetDefault("chain.rpc_rate_limit.burst", 5)
	v.SetDefault("chain.rpc_rate_limit.max_queue_time", "30s")
	v.SetDefault("ownership.ttl", domain.DEFAULT_OWNERSHIP_TTL.String())
	v.SetDefault("reverification.worker.pool_size", 4)
	v.SetDefault("reverification.worker.queue_size", 256)
	v.SetDefault("reverification.initial_interval", "5s")
	v.SetDefault("reverification.max_interval", "2m")
	v.SetDefault("reverification.max_elapsed_time", "30m")
}

// readConfig reads the config file. A config file that cannot be found in the
// search paths is not an error, the service can be configured from env alone.
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Validate checks the settings every chain operation depends on
func (c *ChainConfig) Validate() error {
	if c.RPCURL == "" {
		return errors.New("chain.rpc_url is required")
	}
	if !domain.IsValidChain(c.ChainID) {
		return fmt.Errorf("chain.chain_id is invalid: %q", c.ChainID)
	}
	if c.ContractAddress != "" && !domain.ValidAddress(c.ContractAddress) {
		return fmt.Errorf("chain.contract_address is invalid: %q", c.ContractAddress)
	}
	if c.ConfirmationTimeout <= 0 {
		return errors.New("chain.confirmation_timeout must be positive")
	}
	return nil
}

// Validate checks the platform royalty share, which every tokenization must carry
func (c *RoyaltyConfig) Validate() error {
	if !domain.ValidAddress(c.PlatformRecipient) {
		return fmt.Errorf("royalty.platform_recipient is invalid: %q", c.PlatformRecipient)
	}
	if c.PlatformBasisPoints == 0 || c.PlatformBasisPoints >= domain.MAX_BASIS_POINTS {
		return fmt.Errorf("royalty.platform_basis_points must be between 1 and %d", domain.MAX_BASIS_POINTS-1)
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_RIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Chain
		"chain.rpc_url",
		"chain.chain_id",
		"chain.contract_address",
		"chain.hash_keyed_registry",
		"chain.signer_private_key",
		"chain.confirmation_timeout",
		"chain.verification_retry_delay",
		"chain.rpc_rate_limit.requests_per_second",
		"chain.rpc_rate_limit.burst",
		"chain.rpc_rate_limit.max_queue_time",
		// Royalty
		"royalty.platform_recipient",
		"royalty.platform_basis_points",
		// Ownership cache
		"ownership.ttl",
		// Purchase re-verification
		"reverification.worker.pool_size",
		"reverification.worker.queue_size",
		"reverification.initial_interval",
		"reverification.max_interval",
		"reverification.max_elapsed_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Reconciler
		"reconcile.interval",
		"reconcile.pending_grace",
		"reconcile.batch_size",
		"reconcile.worker.pool_size",
		"reconcile.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
