package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL string
	Port        string
	CORSOrigin  string
	Environment string

	// 解析器配置：rule（内置规则解析）或 gemini（AI 解析）
	ParserMode string

	// Gemini 配置
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout int // 秒
}

func Load() *Config {
	// Default MySQL connection string
	defaultDSN := "root:root@tcp(127.0.0.1:3306)/ncd_quote?charset=utf8mb4&parseTime=True&loc=Local"

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", defaultDSN),
		Port:        getEnv("PORT", "3000"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		Environment: getEnv("ENVIRONMENT", "development"),

		ParserMode: getEnv("PARSER_MODE", "rule"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTimeout: getEnvInt("GEMINI_TIMEOUT_SECONDS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
