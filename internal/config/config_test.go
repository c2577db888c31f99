package config

import (
    "os"
    "testing"
)

func TestDefaultConfig(t *testing.T) {
    _ = os.Unsetenv("ARBITR_CONFIG")
    _ = os.Unsetenv("ARBITR_REGION")
    _ = os.Unsetenv("ARBITR_LOG_LEVEL")

    c := Load()
    if c.Network.Region != "EU-West" {
        t.Fatalf("expected default region EU-West, got %s", c.Network.Region)
    }
    if c.Logging.Level != "info" {
        t.Fatalf("expected default log level info, got %s", c.Logging.Level)
    }
}

func TestEnvOverrides(t *testing.T) {
    t.Setenv("ARBITR_REGION", "EU-Central")
    t.Setenv("ARBITR_LOG_LEVEL", "debug")
    c := Load()
    if c.Network.Region != "EU-Central" {
        t.Fatalf("env override failed for region, got %s", c.Network.Region)
    }
    if c.Logging.Level != "debug" {
        t.Fatalf("env override failed for log level, got %s", c.Logging.Level)
    }
}

func TestDetectorDefaults(t *testing.T) {
    _ = os.Unsetenv("ARBITR_DETECTOR_MODE")
    _ = os.Unsetenv("ARBITR_DETECTOR_EXCHANGES")
    c := Load()
    if c.Detector.Mode != "all" {
        t.Fatalf("expected default detector mode all, got %s", c.Detector.Mode)
    }
    if len(c.Detector.Exchanges) != 3 {
        t.Fatalf("expected 3 default exchanges, got %d", len(c.Detector.Exchanges))
    }
    if c.Ingest.Addr != "127.0.0.1:5001" {
        t.Fatalf("expected default ingest addr 127.0.0.1:5001, got %s", c.Ingest.Addr)
    }
}

func TestDetectorEnvOverrides(t *testing.T) {
    t.Setenv("ARBITR_DETECTOR_MODE", "benchmark")
    t.Setenv("ARBITR_DETECTOR_EXCHANGES", "Binance,OKX")
    t.Setenv("ARBITR_CSV_ENABLED", "true")
    c := Load()
    if c.Detector.Mode != "benchmark" {
        t.Fatalf("env override failed for detector mode, got %s", c.Detector.Mode)
    }
    if len(c.Detector.Exchanges) != 2 || c.Detector.Exchanges[0] != "Binance" {
        t.Fatalf("env override failed for exchanges, got %v", c.Detector.Exchanges)
    }
    if !c.CSV.Enabled {
        t.Fatalf("env override failed for csv enabled")
    }
}
