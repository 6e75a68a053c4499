// Package storage is the local punch cache: the last successfully fetched
// punch stream, kept as a plain text file so status and resumen can still be
// computed while the backend is unreachable. The backend remains the source
// of truth; the cache is overwritten wholesale on every successful fetch.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

const CacheEnvVar = "CAMPEL_CACHE_PATH"

// DefaultCachePath returns the cache file path from the environment
// or defaults to ~/.campel/fichajes.log.
func DefaultCachePath() string {
	envValue := os.Getenv(CacheEnvVar)
	if envValue != "" {
		return filepath.Clean(envValue)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return ".campel/fichajes.log"
	}
	return filepath.Join(home, ".campel", "fichajes.log")
}

// FormatPunch formats a punch as a line in the cache file.
// Format: ISO_TIMESTAMP tipo manual|motivo, with "-" for automatic punches.
func FormatPunch(p fichaje.Punch) string {
	manual := "-"
	if p.IsManual {
		manual = "m"
	}
	return fmt.Sprintf("%s %s %s|%s",
		p.Timestamp.UTC().Format(time.RFC3339), p.Kind, manual, strings.TrimSpace(p.Motive))
}

// ParsePunch parses a single line from the cache file.
func ParsePunch(raw string) (fichaje.Punch, error) {
	if !strings.Contains(raw, "|") {
		return fichaje.Punch{}, fmt.Errorf("punch must contain '|' separator")
	}

	parts := strings.SplitN(raw, "|", 2)
	fields := strings.Fields(strings.TrimSpace(parts[0]))
	if len(fields) != 3 {
		return fichaje.Punch{}, fmt.Errorf("punch must have timestamp, tipo and manual columns")
	}

	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return fichaje.Punch{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	kind := fichaje.Kind(fields[1])
	if kind != fichaje.Entrada && kind != fichaje.Salida {
		return fichaje.Punch{}, fmt.Errorf("invalid tipo: %s", fields[1])
	}

	return fichaje.Punch{
		Kind:      kind,
		Timestamp: ts,
		IsManual:  fields[2] == "m",
		Motive:    strings.TrimSpace(parts[1]),
	}, nil
}

// ReadPunches reads all cached punches.
// Skips empty lines and lines starting with #.
func ReadPunches(path string) ([]fichaje.Punch, error) {
	if path == "" {
		path = DefaultCachePath()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []fichaje.Punch{}, nil
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var punches []fichaje.Punch
	for _, line := range strings.Split(string(content), "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		p, err := ParsePunch(stripped)
		if err != nil {
			// Skip malformed entries but continue reading
			continue
		}
		punches = append(punches, p)
	}

	return punches, nil
}

// WritePunches replaces the cache with the given punch stream.
func WritePunches(punches []fichaje.Punch, path string) error {
	if path == "" {
		path = DefaultCachePath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	var lines []string
	for _, p := range punches {
		lines = append(lines, FormatPunch(p))
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	return os.WriteFile(path, []byte(content), 0644)
}
