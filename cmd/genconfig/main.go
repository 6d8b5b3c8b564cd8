package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/atendsys/gestao-atendimentos/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./atendimentos.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 1 * time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
			Redis: config.RedisOptions{
				Address:  "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "troque-este-segredo-com-no-minimo-32-caracteres",
			TokenExpiration: 24 * time.Hour,
		},
		Bootstrap: config.BootstrapConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			Production: true,
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			ServiceName:   "gestao-atendimentos",
			SamplingRatio: 0.1,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	header := "# Configuração padrão do gestao-atendimentos.\n" +
		"# Qualquer chave pode ser sobrescrita por variável de ambiente com o prefixo GA_,\n" +
		"# por exemplo GA_DATABASE_DSN ou GA_AUTH_JWTSECRET.\n"

	if err := os.WriteFile(outputPath, []byte(header+string(data)), 0644); err != nil {
		fmt.Printf("Erro ao escrever arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Arquivo de configuração gerado em: %s\n", outputPath)
}
