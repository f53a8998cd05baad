package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

func restoreLog(t *testing.T) {
	t.Helper()
	prev, flags, prefix := log.Writer(), log.Flags(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
		log.SetPrefix(prefix)
	})
}

func TestRunReportsMissingPatch(t *testing.T) {
	restoreLog(t)
	dir := t.TempDir()
	c := config{
		rate:    8000,
		patches: dir,
		patch:   "nope",
		logFile: filepath.Join(dir, "synth.log"),
		gain:    synth.DefaultMixGain,
	}
	err := run(c)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("run = %v, want a missing file error", err)
	}
	if _, err := os.Stat(c.logFile); err != nil {
		t.Errorf("log file: %v", err)
	}
}

func TestRunRendersDemo(t *testing.T) {
	restoreLog(t)
	dir := t.TempDir()
	c := config{
		rate:     8000,
		patches:  dir,
		gain:     synth.DefaultMixGain,
		logFile:  filepath.Join(dir, "synth.log"),
		render:   filepath.Join(dir, "demo.wav"),
		duration: 500 * time.Millisecond,
	}
	if err := run(c); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(c.render)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() < 2*4000 {
		t.Errorf("wav size = %d, want at least 4000 16-bit samples", fi.Size())
	}
}
