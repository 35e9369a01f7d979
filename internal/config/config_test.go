// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COURIER_API_URL", "COURIER_NAME", "COURIER_TIMEOUT",
		"COURIER_LOG_LEVEL", "COURIER_LOG_FORMAT", "COURIER_SERVER_ADDR",
		"COURIER_CONFIG",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("COURIER_HOME", t.TempDir())
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.ActiveAPIURL() != "http://localhost:8787" {
		t.Errorf("ActiveAPIURL = %q", cfg.ActiveAPIURL())
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "http://backend.internal:9000"
	cfg.Profile.Name = "李雷"
	cfg.History.DefaultLimit = 7
	cfg.Server.CORSOrigins = []string{"http://a", "http://b"}

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.Profile.Name != "李雷" {
		t.Errorf("Profile.Name = %q", loaded.Profile.Name)
	}
	if loaded.History.DefaultLimit != 7 {
		t.Errorf("DefaultLimit = %d", loaded.History.DefaultLimit)
	}
	if len(loaded.Server.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", loaded.Server.CORSOrigins)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("config mode = %o, want 600", info.Mode().Perm())
		}
	}
}

func TestLoadTOML_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nbase_urll = \"x\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "api.base_urll") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[log]\nlevel = \"loud\"\n[history]\ndefault_limit = -1\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidateErrors, got %T: %v", err, err)
	}
	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	if !fields["log.level"] || !fields["history.default_limit"] {
		t.Errorf("fields = %v", fields)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COURIER_API_URL", "http://env.example/")
	t.Setenv("COURIER_NAME", "env-user")
	t.Setenv("COURIER_TIMEOUT", "5")
	t.Setenv("COURIER_LOG_LEVEL", "DEBUG")
	t.Setenv("COURIER_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.ActiveAPIURL() != "http://env.example/" {
		t.Errorf("ActiveAPIURL = %q", cfg.ActiveAPIURL())
	}
	if cfg.Profile.Name != "env-user" {
		t.Errorf("Name = %q", cfg.Profile.Name)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want lower-cased debug", cfg.Log.Level)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestApplyEnvOverrides_BadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("COURIER_TIMEOUT", "soon")
	if err := Default().ApplyEnvOverrides(); err == nil {
		t.Error("expected error for non-integer timeout")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("COURIER_NAME")
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("COURIER_NAME=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("COURIER_NAME") })

	if got := os.Getenv("COURIER_NAME"); got != "from-dotenv" {
		t.Errorf("COURIER_NAME = %q", got)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}
}

func TestSaveProfile_PreservesOtherKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.History.DefaultLimit = 3
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}
	if err := SaveProfile(path, "ana", "http://saved.example"); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Profile.Name != "ana" || loaded.ActiveAPIURL() != "http://saved.example" {
		t.Errorf("profile = %+v", loaded.Profile)
	}
	if loaded.History.DefaultLimit != 3 {
		t.Errorf("DefaultLimit = %d, want 3", loaded.History.DefaultLimit)
	}
}

func TestUpdateProfile_KeepsStoredURL(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SaveProfile(path, "ana", "http://saved.example"); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COURIER_API_URL", "http://from-env.example")

	if err := UpdateProfile(path, func(p *ProfileConfig) { p.Name = "bea" }); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	stored := Default()
	if err := LoadTOML(stored, path); err != nil {
		t.Fatal(err)
	}
	if stored.Profile.Name != "bea" {
		t.Errorf("Name = %q, want bea", stored.Profile.Name)
	}
	if stored.Profile.APIURL != "http://saved.example" {
		t.Errorf("APIURL = %q, want the stored URL", stored.Profile.APIURL)
	}
}

// =============================================================================
// GET / SET
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value string
		want  interface{}
	}{
		{"api.base_url", "http://x.example", "http://x.example"},
		{"api.timeout_secs", "12", 12},
		{"profile.api_url", "http://y.example", "http://y.example"},
		{"ui.render_markdown", "no", false},
		{"server.cors_origins", "http://a, http://b", []string{"http://a", "http://b"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			switch want := tt.want.(type) {
			case []string:
				gotSlice, ok := got.([]string)
				if !ok || strings.Join(gotSlice, "|") != strings.Join(want, "|") {
					t.Errorf("got %v, want %v", got, want)
				}
			default:
				if got != tt.want {
					t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
				}
			}
		})
	}
}

func TestGetSet_Errors(t *testing.T) {
	cfg := Default()

	if _, err := cfg.Get("api.nope"); err == nil {
		t.Error("expected unknown field error")
	}
	if _, err := cfg.Get(""); err == nil {
		t.Error("expected empty key error")
	}
	if err := cfg.Set("api", "x"); err == nil {
		t.Error("expected error setting a section")
	}
	if err := cfg.Set("api.timeout_secs", "ten"); err == nil {
		t.Error("expected integer parse error")
	}
	if err := cfg.Set("ui.highlight_json", "maybe"); err == nil {
		t.Error("expected bool parse error")
	}
	if err := cfg.Set("api.base_url.x", "y"); err == nil {
		t.Error("expected not-a-struct error")
	}
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("key %q does not resolve: %v", key, err)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Server.CORSOrigins[0] = "changed"
	clone.Profile.Name = "other"

	if cfg.Server.CORSOrigins[0] == "changed" || cfg.Profile.Name == "other" {
		t.Error("clone shares state with original")
	}
}

// =============================================================================
// GLOBAL
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under the race detector.
func TestConfig_ConcurrentAccess(t *testing.T) {
	clearEnv(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
