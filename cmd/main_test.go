package main

import (
	"bytes"
	"flag"
	"os"
	"testing"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-09-01"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	if !contains(output, "version v1.0.0") ||
		!contains(output, "commit abcd1234") ||
		!contains(output, "build 2026-09-01") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort, logLevel, appEnv,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		rateLimitMax, rateLimitWindowSec, rateLimitRedisAddr,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if appHost != "localhost" || appPort != "8080" || logLevel != "info" || appEnv != "production" {
		t.Errorf("unexpected app config: %v/%v/%v/%v", appHost, appPort, logLevel, appEnv)
	}

	// PostgreSQL
	if pgHost != "localhost" || pgPort != 5432 || pgUser != "user" || pgPassword != "password" || pgDB != "database" ||
		pgMaxOpenConns != 16 || pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Rate limit
	if rateLimitMax != 100 || rateLimitWindowSec != 60 || rateLimitRedisAddr != "" {
		t.Errorf("unexpected rate limit config: %v/%v/%v", rateLimitMax, rateLimitWindowSec, rateLimitRedisAddr)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	resetEnv()

	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_ENV", "development")
	os.Setenv("RATE_LIMIT_MAX", "5")
	os.Setenv("RATE_LIMIT_WINDOW_SECOND", "10")
	os.Setenv("RATE_LIMIT_REDIS_ADDR", "localhost:6379")
	defer resetEnv()

	_, appPort, _, appEnv,
		_, _, _, _, _,
		_, _,
		rateLimitMax, rateLimitWindowSec, rateLimitRedisAddr,
		err := parseConfig("nonexistent.env")

	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if appPort != "9090" || appEnv != "development" {
		t.Errorf("unexpected app config: %v/%v", appPort, appEnv)
	}
	if rateLimitMax != 5 || rateLimitWindowSec != 10 || rateLimitRedisAddr != "localhost:6379" {
		t.Errorf("unexpected rate limit config: %v/%v/%v", rateLimitMax, rateLimitWindowSec, rateLimitRedisAddr)
	}
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()

	os.Setenv("POSTGRES_PORT", "not-a-number")
	defer resetEnv()

	_, _, _, _,
		_, _, _, _, _,
		_, _,
		_, _, _,
		err := parseConfig("nonexistent.env")

	if err == nil {
		t.Fatal("expected error for non-numeric POSTGRES_PORT")
	}
}
