package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PROFILE_CSV", "FILTER_PROVINCE", "REFERENCE_YEAR", "MIN_MATCHED_ITEMS",
		"EXPORT_CSV_DIR", "EXPORT_POSTGRES", "CHART_DIR", "MAX_RETRIES", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "data/Profil_Gen_Z.csv", cfg.ProfileCSV)
	assert.Equal(t, "Semua", cfg.FilterProvince)
	assert.Equal(t, 2025, cfg.ReferenceYear)
	assert.Equal(t, 10, cfg.MinMatchedItems)
	assert.Empty(t, cfg.ExportCSVDir)
	assert.False(t, cfg.ExportPostgres)
	assert.Empty(t, cfg.ChartDir)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PROFILE_CSV", "/tmp/profile.csv")
	t.Setenv("FILTER_GENDER", "Perempuan")
	t.Setenv("REFERENCE_YEAR", "2030")
	t.Setenv("MIN_MATCHED_ITEMS", "not-a-number")
	t.Setenv("EXPORT_POSTGRES", "true")
	t.Setenv("EXPORT_SQLITE_PATH", "out/report.db")

	cfg := FromEnv()

	assert.Equal(t, "/tmp/profile.csv", cfg.ProfileCSV)
	assert.Equal(t, "Perempuan", cfg.FilterGender)
	assert.Equal(t, 2030, cfg.ReferenceYear)
	assert.Equal(t, 10, cfg.MinMatchedItems, "invalid ints fall back to the default")
	assert.True(t, cfg.ExportPostgres)
	assert.Equal(t, "out/report.db", cfg.ExportSQLitePath)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "genz",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=genz sslmode=disable", cfg.DSN())
}
