package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/betafcc/cpf/pkg/cpf"
)

// CLI captures command-line tool configuration.
type CLI struct {
	LogLevel  string
	DefaultUf cpf.Uf // empty draws a random uf
	Seed      uint64 // zero uses the process-wide random source
	Workers   int
}

// DefaultWorkers bounds concurrent validation when CPF_WORKERS is unset.
var DefaultWorkers = 8

// FromEnv builds a CLI config from environment variables so main stays lean.
// Invalid values fall back to defaults.
func FromEnv() CLI {
	logLevel := os.Getenv("CPF_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var defaultUf cpf.Uf
	if raw := strings.ToUpper(strings.TrimSpace(os.Getenv("CPF_DEFAULT_UF"))); raw != "" {
		if uf, err := cpf.ParseUf(raw); err == nil {
			defaultUf = uf
		}
	}

	var seed uint64
	if raw := os.Getenv("CPF_SEED"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			seed = parsed
		}
	}

	workers := DefaultWorkers
	if raw := os.Getenv("CPF_WORKERS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			workers = parsed
		}
	}

	return CLI{
		LogLevel:  logLevel,
		DefaultUf: defaultUf,
		Seed:      seed,
		Workers:   workers,
	}
}
