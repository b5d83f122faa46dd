package config

import "testing"

func TestValidate_InvalidCorpusDriver(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Corpus: CorpusConfig{Driver: "postgres"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid corpus driver")
	}

	expected := `corpus.driver must be "memory" or "redis", got "postgres"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Corpus: CorpusConfig{Driver: "redis"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MemoryDriverNeedsNoAddrs(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Corpus: CorpusConfig{Driver: "memory"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 0},
		Corpus: CorpusConfig{Driver: "memory"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_NegativePoolSize(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Corpus: CorpusConfig{Driver: "memory"},
		Ingest: IngestConfig{PoolSize: -1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative pool size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Corpus.Driver != "memory" {
		t.Errorf("expected Driver='memory', got %q", cfg.Corpus.Driver)
	}
	if cfg.Corpus.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Corpus.ReadinessTimeout)
	}
	if cfg.Corpus.KeyPrefix != "defscope:" {
		t.Errorf("expected KeyPrefix='defscope:', got %q", cfg.Corpus.KeyPrefix)
	}
	if cfg.Ingest.MaxBatchSize != 500 {
		t.Errorf("expected MaxBatchSize=500, got %d", cfg.Ingest.MaxBatchSize)
	}
	if cfg.Search.MaxQueryLength != 256 {
		t.Errorf("expected MaxQueryLength=256, got %d", cfg.Search.MaxQueryLength)
	}
	if cfg.Search.AnalyticsTopK != 5 {
		t.Errorf("expected AnalyticsTopK=5, got %d", cfg.Search.AnalyticsTopK)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Corpus: CorpusConfig{Driver: "redis", ReadinessTimeout: 15, KeyPrefix: "custom:"},
		Ingest: IngestConfig{PoolSize: 4, MaxBatchSize: 50},
		Search: SearchConfig{MaxQueryLength: 512, AnalyticsTopK: 10},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Corpus.Driver != "redis" {
		t.Errorf("expected Driver='redis', got %q", cfg.Corpus.Driver)
	}
	if cfg.Corpus.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Corpus.KeyPrefix)
	}
	if cfg.Search.AnalyticsTopK != 10 {
		t.Errorf("expected AnalyticsTopK=10, got %d", cfg.Search.AnalyticsTopK)
	}
}
