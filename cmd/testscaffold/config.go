package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/testscaffold/pkg/pipeline"
)

// ProjectConfig holds the contents of .testscaffold.yaml.
type ProjectConfig struct {
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
	// MCPLogPath enables JSONL tool-call logging when serving MCP.
	MCPLogPath string `yaml:"mcp_log_path"`
	// WatchDebounceMs overrides the watch-mode debounce window.
	WatchDebounceMs int `yaml:"watch_debounce_ms"`
}

// loadProjectConfig reads .testscaffold.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".testscaffold.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// discoveryConfig maps the project config onto discovery settings, falling
// back to the defaults for any list left empty.
func discoveryConfig(cfg *ProjectConfig) pipeline.DiscoveryConfig {
	dc := pipeline.DefaultDiscoveryConfig()
	if cfg == nil {
		return dc
	}
	if len(cfg.Include) > 0 {
		dc.Include = cfg.Include
	}
	if len(cfg.Exclude) > 0 {
		dc.Exclude = cfg.Exclude
	}
	return dc
}
