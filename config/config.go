package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ProfileCSV  string
	LiteracyCSV string
	RegionalCSV string

	FilterProvince  string
	FilterGender    string
	ReferenceYear   int
	MinMatchedItems int

	ExportCSVDir     string
	ExportXLSXPath   string
	ExportSQLitePath string
	ExportPostgres   bool
	ChartDir         string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxRetries int
	LogLevel   string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		ProfileCSV:  getEnv("PROFILE_CSV", "data/Profil_Gen_Z.csv"),
		LiteracyCSV: getEnv("LITERACY_CSV", "data/Literasi_Keuangan_Gen_Z.csv"),
		RegionalCSV: getEnv("REGIONAL_CSV", "data/Data_Regional.csv"),

		FilterProvince:  getEnv("FILTER_PROVINCE", "Semua"),
		FilterGender:    getEnv("FILTER_GENDER", "Semua"),
		ReferenceYear:   getEnvInt("REFERENCE_YEAR", 2025),
		MinMatchedItems: getEnvInt("MIN_MATCHED_ITEMS", 10),

		ExportCSVDir:     getEnv("EXPORT_CSV_DIR", ""),
		ExportXLSXPath:   getEnv("EXPORT_XLSX_PATH", ""),
		ExportSQLitePath: getEnv("EXPORT_SQLITE_PATH", ""),
		ExportPostgres:   getEnvBool("EXPORT_POSTGRES", false),
		ChartDir:         getEnv("CHART_DIR", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "dashboard"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "dashboard123"),
		PostgresDB:       getEnv("POSTGRES_DB", "genz_dashboard"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxRetries: getEnvInt("MAX_RETRIES", 3),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
