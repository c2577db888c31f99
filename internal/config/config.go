package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Network struct {
		Region             string `yaml:"region"`
		WSKeepAliveSeconds int    `yaml:"ws_keepalive_seconds"`
	} `yaml:"network"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Server struct {
		Addr                string   `yaml:"addr"`
		Pprof               bool     `yaml:"pprof"`
		ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
		IdleTimeoutSeconds  int      `yaml:"idle_timeout_seconds"`
		AdminAllowCIDRs     []string `yaml:"admin_allow_cidrs"`
	} `yaml:"server"`
	Ingest struct {
		Addr string `yaml:"addr"`
	} `yaml:"ingest"`
	Detector struct {
		// Mode selects the CLI's default if no interactive choice is made:
		// "all", "single", "benchmark", or the config-only "super-source".
		Mode             string   `yaml:"mode"`
		SingleSourceNode string   `yaml:"single_source_node"`
		Exchanges        []string `yaml:"exchanges"`
		WarmupSeconds    int      `yaml:"warmup_seconds"`
	} `yaml:"detector"`
	CSV struct {
		Enabled bool   `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"csv"`
	Benchmark struct {
		WarmupSeconds int `yaml:"warmup_seconds"`
		ReportSeconds int `yaml:"report_seconds"`
	} `yaml:"benchmark"`
}

func defaultConfig() Config {
	var c Config
	c.Network.Region = "EU-West"
	c.Network.WSKeepAliveSeconds = 15
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Server.Addr = ":9090"
	c.Server.Pprof = false
	c.Server.ReadTimeoutSeconds = 5
	c.Server.WriteTimeoutSeconds = 10
	c.Server.IdleTimeoutSeconds = 60
	c.Server.AdminAllowCIDRs = []string{"127.0.0.0/8", "::1/128"}
	c.Ingest.Addr = "127.0.0.1:5001"
	c.Detector.Mode = "all"
	c.Detector.Exchanges = []string{"Binance", "OKX", "Bybit"}
	c.Detector.WarmupSeconds = 3
	c.CSV.Enabled = false
	c.CSV.Dir = "."
	c.Benchmark.WarmupSeconds = 10
	c.Benchmark.ReportSeconds = 5
	return c
}

func Load() Config {
	c := defaultConfig()
	if path := os.Getenv("ARBITR_CONFIG"); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	if v := os.Getenv("ARBITR_REGION"); v != "" {
		c.Network.Region = v
	}
	if v := os.Getenv("ARBITR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ARBITR_HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ARBITR_PPROF"); v == "1" || v == "true" {
		c.Server.Pprof = true
	}
	if v := os.Getenv("ARBITR_ADMIN_ALLOW_CIDRS"); v != "" {
		c.Server.AdminAllowCIDRs = splitCSV(v)
	}
	if v := os.Getenv("ARBITR_INGEST_ADDR"); v != "" {
		c.Ingest.Addr = v
	}
	if v := os.Getenv("ARBITR_DETECTOR_MODE"); v != "" {
		c.Detector.Mode = v
	}
	if v := os.Getenv("ARBITR_DETECTOR_SINGLE_SOURCE"); v != "" {
		c.Detector.SingleSourceNode = v
	}
	if v := os.Getenv("ARBITR_DETECTOR_EXCHANGES"); v != "" {
		c.Detector.Exchanges = splitCSV(v)
	}
	if v := os.Getenv("ARBITR_DETECTOR_WARMUP_SECONDS"); v != "" {
		var n int
		_, _ = fmt.Sscan(v, &n)
		if n >= 0 {
			c.Detector.WarmupSeconds = n
		}
	}
	if v := os.Getenv("ARBITR_CSV_ENABLED"); v == "1" || v == "true" {
		c.CSV.Enabled = true
	}
	if v := os.Getenv("ARBITR_CSV_DIR"); v != "" {
		c.CSV.Dir = v
	}
	if v := os.Getenv("ARBITR_BENCHMARK_WARMUP_SECONDS"); v != "" {
		var n int
		_, _ = fmt.Sscan(v, &n)
		if n >= 0 {
			c.Benchmark.WarmupSeconds = n
		}
	}
	if v := os.Getenv("ARBITR_BENCHMARK_REPORT_SECONDS"); v != "" {
		var n int
		_, _ = fmt.Sscan(v, &n)
		if n > 0 {
			c.Benchmark.ReportSeconds = n
		}
	}
	return c
}

func splitCSV(s string) []string {
	var out []string
	buf := []rune{}
	for _, r := range s {
		if r == ',' {
			if len(buf) > 0 {
				out = append(out, string(buf))
				buf = buf[:0]
			}
			continue
		}
		buf = append(buf, r)
	}
	if len(buf) > 0 {
		out = append(out, string(buf))
	}
	return out
}
