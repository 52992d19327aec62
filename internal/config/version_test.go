package config

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseVersionedConfig_LegacyConfig(t *testing.T) {
	// Legacy settings without version field
	legacyJSON := `{
		"language": "zh",
		"dataPath": "/old/place"
	}`

	cfg, err := ParseVersionedConfig([]byte(legacyJSON))
	if err != nil {
		t.Fatalf("Failed to parse legacy config: %v", err)
	}

	if cfg.Language != "zh" {
		t.Errorf("Expected language 'zh', got '%s'", cfg.Language)
	}
	if cfg.DataDir != "/old/place" {
		t.Errorf("Expected dataPath folded into DataDir, got '%s'", cfg.DataDir)
	}
}

func TestParseVersionedConfig_Version1(t *testing.T) {
	v1JSON := `{
		"version": 1,
		"language": "en",
		"storage": {"backend": "bolt"}
	}`

	cfg, err := ParseVersionedConfig([]byte(v1JSON))
	if err != nil {
		t.Fatalf("Failed to parse v1 config: %v", err)
	}

	if cfg.Storage.Backend != "bolt" {
		t.Errorf("Expected backend 'bolt', got '%s'", cfg.Storage.Backend)
	}
}

func TestParseVersionedConfig_FutureVersion(t *testing.T) {
	futureJSON := `{
		"version": 999,
		"language": "en"
	}`

	_, err := ParseVersionedConfig([]byte(futureJSON))
	if err == nil {
		t.Error("Expected error for future version, got nil")
	}
}

func TestApplyMigrations_V0ToV1(t *testing.T) {
	data := map[string]interface{}{
		"language": "en",
		"dataPath": "/somewhere",
	}

	migrated, err := ApplyMigrations(data, 0)
	if err != nil {
		t.Fatalf("Migration failed: %v", err)
	}

	if migrated["version"] != 1 {
		t.Errorf("Expected version 1, got %v", migrated["version"])
	}
	if migrated["dataDir"] != "/somewhere" {
		t.Errorf("Expected dataDir '/somewhere', got %v", migrated["dataDir"])
	}
	if _, ok := migrated["dataPath"]; ok {
		t.Error("Expected dataPath to be removed")
	}
}

func TestMarshalVersionedConfig(t *testing.T) {
	cfg := DefaultConfig()

	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !strings.Contains(string(data), `"version": 1`) {
		t.Errorf("Expected version in output:\n%s", data)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := raw["storage"]; !ok {
		t.Error("Expected storage section in output")
	}
}
