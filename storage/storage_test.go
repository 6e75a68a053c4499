package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

func TestFormatAndParseRoundTrip(t *testing.T) {
	p := fichaje.Punch{
		Kind:      fichaje.Entrada,
		Timestamp: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		IsManual:  true,
		Motive:    "olvido de fichaje",
	}

	raw := FormatPunch(p)
	parsed, err := ParsePunch(raw)
	if err != nil {
		t.Fatalf("Failed to parse punch: %v", err)
	}

	if parsed.Kind != p.Kind {
		t.Errorf("Kind mismatch: got %q, want %q", parsed.Kind, p.Kind)
	}
	if !parsed.Timestamp.Equal(p.Timestamp) {
		t.Errorf("Timestamp mismatch: got %v, want %v", parsed.Timestamp, p.Timestamp)
	}
	if !parsed.IsManual {
		t.Error("Expected manual flag preserved")
	}
	if parsed.Motive != p.Motive {
		t.Errorf("Motive mismatch: got %q, want %q", parsed.Motive, p.Motive)
	}
}

func TestParsePunchRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"no separator",
		"2024-03-04T09:00:00Z entrada|missing manual column",
		"not-a-time entrada -|",
		"2024-03-04T09:00:00Z pausa -|unknown tipo",
	}
	for _, raw := range cases {
		if _, err := ParsePunch(raw); err == nil {
			t.Errorf("Expected parse error for %q", raw)
		}
	}
}

func TestWriteAndReadPunches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fichajes.log")
	punches := []fichaje.Punch{
		{Kind: fichaje.Entrada, Timestamp: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)},
		{Kind: fichaje.Salida, Timestamp: time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC), IsManual: true, Motive: "cita médica"},
	}

	if err := WritePunches(punches, path); err != nil {
		t.Fatalf("Failed to write cache: %v", err)
	}

	got, err := ReadPunches(path)
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 punches, got %d", len(got))
	}
	if got[1].Motive != "cita médica" {
		t.Errorf("Motive mismatch: got %q", got[1].Motive)
	}
}

func TestReadPunchesSkipsCommentsAndGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fichajes.log")
	content := "# cache header\n" +
		"\n" +
		"2024-03-04T09:00:00Z entrada -|\n" +
		"garbage line\n" +
		"2024-03-04T13:00:00Z salida -|\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadPunches(path)
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 valid punches, got %d", len(got))
	}
}

func TestReadPunchesMissingFile(t *testing.T) {
	got, err := ReadPunches(filepath.Join(t.TempDir(), "missing.log"))
	if err != nil {
		t.Fatalf("Expected missing cache treated as empty, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no punches, got %d", len(got))
	}
}
