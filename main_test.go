package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jameskane05/shadow/internal/pipeline"
	"github.com/jameskane05/shadow/internal/testutil"
)

func TestLoadOrCreateScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	// Missing file starts a fresh scene with playback defaults.
	sc, err := loadOrCreateScene(path)
	testutil.AssertNoError(t, err)
	if sc.FrameStart != 1 || sc.FPS != 24 {
		t.Errorf("fresh scene = start %d fps %v", sc.FrameStart, sc.FPS)
	}

	sc.FPS = 30
	sc.AddCamera("Cam")
	testutil.AssertNoError(t, sc.Save(path))

	sc, err = loadOrCreateScene(path)
	testutil.AssertNoError(t, err)
	if sc.FPS != 30 {
		t.Errorf("FPS = %v, want 30", sc.FPS)
	}
	if sc.Object("Cam") == nil {
		t.Error("saved camera lost on reload")
	}
}

func TestLoadOrCreateSceneBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	testutil.AssertNoError(t, os.WriteFile(path, []byte("not json"), 0644))
	if _, err := loadOrCreateScene(path); err == nil {
		t.Error("corrupt scene document did not fail to load")
	}
}

func TestRecordRunDisabled(t *testing.T) {
	// An empty db path disables logging without side effects.
	recordRun("", "import", "walk.json", nil, pipeline.Finished("ok"))
}
