package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to the interaction database built by the ingestion scripts
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// Engine tunables.

	// BatchWindow is the number of identifiers placed in a single IN-list
	// before the query is split. SQLite's bound-variable ceiling is the
	// reason this exists.
	BatchWindow int // STRINGVIZ_BATCH_WINDOW (default: 900)
	// MaxNodesCeiling caps the max_nodes a request may ask for.
	MaxNodesCeiling int // STRINGVIZ_MAX_NODES_CEILING (default: 2000)
	// AliasCandidateLimit bounds alias rows fetched per query.
	AliasCandidateLimit int // STRINGVIZ_ALIAS_CANDIDATE_LIMIT (default: 50)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// FromEnv loads configuration from STRINGVIZ_* environment variables.
// Values already set from flags are only overridden when the variable is present.
func (p *Profile) FromEnv() {
	if v := os.Getenv("STRINGVIZ_MODE"); v != "" {
		p.Mode = v
	}
	if v := os.Getenv("STRINGVIZ_ADDR"); v != "" {
		p.Addr = v
	}
	if v := os.Getenv("STRINGVIZ_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Port = port
		}
	}
	if v := os.Getenv("STRINGVIZ_DATA"); v != "" {
		p.Data = v
	}
	if v := os.Getenv("STRINGVIZ_DSN"); v != "" {
		p.DSN = v
	}
	if v := os.Getenv("STRINGVIZ_DRIVER"); v != "" {
		p.Driver = v
	}

	p.BatchWindow = getIntEnvOrDefault("STRINGVIZ_BATCH_WINDOW", p.BatchWindow)
	p.MaxNodesCeiling = getIntEnvOrDefault("STRINGVIZ_MAX_NODES_CEILING", p.MaxNodesCeiling)
	p.AliasCandidateLimit = getIntEnvOrDefault("STRINGVIZ_ALIAS_CANDIDATE_LIMIT", p.AliasCandidateLimit)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q: must be sqlite or postgres", p.Driver)
	}

	if p.BatchWindow <= 0 {
		p.BatchWindow = 900
	}
	if p.MaxNodesCeiling <= 0 {
		p.MaxNodesCeiling = 2000
	}
	if p.AliasCandidateLimit <= 0 {
		p.AliasCandidateLimit = 50
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("string_%s.sqlite", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires a DSN")
	}

	return nil
}
