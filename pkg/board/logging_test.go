package board

import (
	"testing"

	"github.com/pbmines/engine/pkg/geometry"
)

func TestNewZapLoggerBuildsAUsableLogger(t *testing.T) {
	logger, err := NewZapLogger(true)
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	if logger.GetSink() == nil {
		t.Fatal("expected a non-discarding logr.Logger")
	}

	b, err := New(Config{Width: 3, Height: 3, TotalMines: 1, Niceness: Cruel, Seed: 1, Logger: logger})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reveal(geometry.Position{X: 1, Y: 1}) // must log "game started" without panicking
	if b.Status() == NotStarted {
		t.Fatal("expected the board to have left NotStarted after Reveal")
	}
}

func TestNewZapLoggerProductionConfig(t *testing.T) {
	logger, err := NewZapLogger(false)
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	if logger.GetSink() == nil {
		t.Fatal("expected a non-discarding logr.Logger")
	}
}
