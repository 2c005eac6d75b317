package estimate_test

import (
	"testing"

	"modublock/internal/estimate"
)

func TestFromWall(t *testing.T) {
	// 10m x 3m wall, 6" blocks: 30m² / 0.08 * 1.05 = 393.75 -> 394 blocks
	e := estimate.FromWall(10, 3, "6")
	if e.BlocksNeeded != 394 {
		t.Fatalf("want 394 blocks, got %d", e.BlocksNeeded)
	}
	if e.BagsOfCement != 8 { // ceil(394/55)
		t.Fatalf("want 8 bags, got %d", e.BagsOfCement)
	}
	if e.SandTons != 3.5 { // round(394*0.009, 1)
		t.Fatalf("want 3.5t sand, got %v", e.SandTons)
	}
	if e.EstimatedDays != 1 { // ceil(394/400)
		t.Fatalf("want 1 day, got %d", e.EstimatedDays)
	}
}

func TestFromWallZeroDimensions(t *testing.T) {
	e := estimate.FromWall(0, 0, "5")
	if e.BlocksNeeded != 0 || e.BagsOfCement != 0 || e.SandTons != 0 || e.EstimatedDays != 0 {
		t.Fatalf("zero wall should estimate nothing: %+v", e)
	}
}

func TestFromPreset(t *testing.T) {
	e := estimate.FromPreset("4bed", "8")
	if e.BlocksNeeded != 4500 {
		t.Fatalf("preset block count is fixed at 4500, got %d", e.BlocksNeeded)
	}
	if e.BagsOfCement != 108 { // ceil(4500/42)
		t.Fatalf("want 108 bags, got %d", e.BagsOfCement)
	}
	if e.SandTons != 40.5 {
		t.Fatalf("want 40.5t sand, got %v", e.SandTons)
	}
	if e.EstimatedDays != 12 { // ceil(4500/400)
		t.Fatalf("want 12 days, got %d", e.EstimatedDays)
	}
}

// Unknown preset ids fall back to the first preset instead of erroring.
func TestFromPresetUnknownFallsBack(t *testing.T) {
	got := estimate.FromPreset("mansion", "6")
	want := estimate.FromPreset("3bed", "6")
	if got != want {
		t.Fatalf("unknown preset should fall back to 3bed: got %+v want %+v", got, want)
	}
}

// Preset block counts do not vary with block type.
func TestPresetBlocksIndependentOfBlockType(t *testing.T) {
	for _, bt := range []string{"5", "6", "8"} {
		if e := estimate.FromPreset("5bed", bt); e.BlocksNeeded != 5800 {
			t.Fatalf("blockType %s changed preset block count: %d", bt, e.BlocksNeeded)
		}
	}
}
