package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	RedisURL         string
	MetricsPort      string
	DataDir          string
	TemplatePath     string
	GoogleSheetID    string
	GoogleSheetAba   string
	GoogleCredential string
	AnymarketToken   string
	IntelipostKey    string
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		MetricsPort:      getEnv("METRICS_PORT", "9090"),
		DataDir:          getEnv("DATA_DIR", "dados"),
		TemplatePath:     getEnv("TEMPLATE_CADASTRO", "Template_Produtos_Cadastro.xlsx"),
		GoogleSheetID:    os.Getenv("GOOGLE_SHEET_ID"),
		GoogleSheetAba:   getEnv("GOOGLE_SHEET_ABA", "Produtos"),
		GoogleCredential: getEnv("GOOGLE_CREDENTIALS", "credentials.json"),
		AnymarketToken:   os.Getenv("ANYMARKET_TOKEN"),
		IntelipostKey:    os.Getenv("INTELIPOST_API_KEY"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
