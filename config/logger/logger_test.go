package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAppLoggerWritesRotatedFiles(t *testing.T) {
	dir := t.TempDir()
	log := NewAppLogger(dir)

	log.WS.Info.Info().Str("engagementId", "eng-1").Msg("connected")

	data, err := os.ReadFile(filepath.Join(dir, "ws.info.log"))
	if err != nil {
		t.Fatalf("read ws log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected ws.info.log to contain the entry")
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.DB.Error.Error().Msg("ignored")
}
