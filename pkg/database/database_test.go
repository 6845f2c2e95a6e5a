package database

import (
	"mindcheck_backend/internal/config"
	"testing"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:      "db",
		Port:      3306,
		User:      "mind",
		Password:  "secret",
		DBName:    "mindcheck",
		Charset:   "utf8mb4",
		ParseTime: true,
	}
	want := "mind:secret@tcp(db:3306)/mindcheck?charset=utf8mb4&parseTime=true&loc=Local"
	if got := DSN(cfg); got != want {
		t.Fatalf("DSN=%q, want %q", got, want)
	}
}
