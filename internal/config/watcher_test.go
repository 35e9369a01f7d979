// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *Config, 4)
	w, err := Watch(path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := SaveProfile(path, "watched", "http://watched.example"); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.Profile.Name != "watched" {
			t.Errorf("Profile.Name = %q", cfg.Profile.Name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within 3s")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	called := make(chan struct{}, 1)
	w, err := Watch(path, 10*time.Millisecond, func(*Config, error) {
		called <- struct{}{}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-called:
		t.Error("callback fired for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_CloseIsClean(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "config.toml"), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
