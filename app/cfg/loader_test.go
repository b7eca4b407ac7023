package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:            "/var/lib/thoughtforge/data.db",
		Port:              "8080",
		SchedulerKey:      "cron-key",
		WorkerID:          "worker-1",
		WorkerCount:       2,
		SchedulerInterval: 60,
		JobTTLHours:       168,
		AIMode:            "placeholder",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBPath != "/var/lib/thoughtforge/data.db" {
		t.Errorf("Expected DB path '/var/lib/thoughtforge/data.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SchedulerKey != "cron-key" {
		t.Errorf("Expected scheduler key 'cron-key', got '%s'", cfg.SchedulerKey)
	}
	if cfg.WorkerID != "worker-1" {
		t.Errorf("Expected worker id 'worker-1', got '%s'", cfg.WorkerID)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.JobTTLHours != 168 {
		t.Errorf("Expected job TTL 168, got %d", cfg.JobTTLHours)
	}
	if cfg.AIMode != "placeholder" {
		t.Errorf("Expected AI mode 'placeholder', got '%s'", cfg.AIMode)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestGetPanicsWhenNotLoaded(t *testing.T) {
	old := globalCfg
	globalCfg = nil
	defer func() {
		globalCfg = old
		if r := recover(); r == nil {
			t.Error("Get should panic when configuration is not loaded")
		}
	}()
	Get()
}
