package spawner

import "testing"

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.WithDefaults()

	if cfg.ServiceMaxTimeoutMS != 10000 {
		t.Errorf("expected default timeout of 10000ms, got %d", cfg.ServiceMaxTimeoutMS)
	}
	if cfg.TimeoutMessage == nil {
		t.Error("expected a default TimeoutMessage")
	}
	if cfg.Log == nil {
		t.Error("expected a default Log sink")
	}
	if cfg.Cache == nil {
		t.Error("expected a default Cache")
	}
	if cfg.MaxArgvBytes <= 0 {
		t.Error("expected a positive default MaxArgvBytes")
	}
	if cfg.KillGrace <= 0 {
		t.Error("expected a positive default KillGrace")
	}
}

func TestConfig_WithDefaults_PreservesExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := Config{ServiceMaxTimeoutMS: 42, MaxArgvBytes: 99}.WithDefaults()
	if cfg.ServiceMaxTimeoutMS != 42 {
		t.Errorf("expected explicit timeout to survive defaulting, got %d", cfg.ServiceMaxTimeoutMS)
	}
	if cfg.MaxArgvBytes != 99 {
		t.Errorf("expected explicit MaxArgvBytes to survive defaulting, got %d", cfg.MaxArgvBytes)
	}
}
