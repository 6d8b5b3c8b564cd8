package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Bootstrap BootstrapConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string // sqlite, mysql, postgres
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// CacheConfig contém configurações do cache de funções
type CacheConfig struct {
	Enabled bool
	Type    string // memory, redis, noop
	TTL     time.Duration
	Redis   RedisOptions
}

// AuthConfig contém configurações de autenticação
type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

// BootstrapConfig contém o administrador inicial semeado na primeira execução.
// A senha padrão deve ser trocada pelo operador na primeira implantação.
type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Format     string // json, console
	Production bool
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	ServiceName   string
	SamplingRatio float64
}

// LoadConfig carrega a configuração de diversas fontes (arquivo, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Definir valores padrão
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Locais para procurar arquivos de configuração
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gestao-atendimentos")

	// Ler arquivo de configuração
	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Ler variáveis de ambiente com prefixo GA_
	v.SetEnvPrefix("GA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Mapear configuração para a estrutura
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	// Validar a configuração
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "30s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.shutdownTimeout", "10s")

	// Banco de dados: um único arquivo SQLite por padrão
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "atendimentos.db")
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")

	// Cache de funções
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)

	// Autenticação
	v.SetDefault("auth.tokenExpiration", "24h")

	// Administrador inicial (semeado apenas quando a tabela está vazia)
	v.SetDefault("bootstrap.adminUsername", "admin")
	v.SetDefault("bootstrap.adminPassword", "admin123")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.production", true)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.serviceName", "gestao-atendimentos")
	v.SetDefault("tracing.samplingRatio", 1.0)
}

// validateConfig valida os campos obrigatórios da configuração
func validateConfig(config *Config) error {
	if config.Database.DSN == "" {
		return fmt.Errorf("database.dsn não pode ser vazio")
	}

	switch config.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("driver de banco de dados não suportado: %s", config.Database.Driver)
	}

	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret é obrigatório (defina GA_AUTH_JWTSECRET)")
	}
	if len(config.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwtSecret deve ter pelo menos 32 caracteres")
	}

	if config.Bootstrap.AdminUsername == "" || config.Bootstrap.AdminPassword == "" {
		return fmt.Errorf("bootstrap.adminUsername e bootstrap.adminPassword não podem ser vazios")
	}

	return nil
}
