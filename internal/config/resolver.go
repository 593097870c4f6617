// Package config resolves lichviet configuration from its layered sources:
// built-in defaults, the YAML config file, environment variables, and CLI
// flags, in that precedence order. Every resolved value carries its source
// so diagnostics can say where a setting came from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath   string
	CLIDBPath    string
	CLIVocabPath string
	CLIPollSecs  string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath    ResolvedValue `json:"db_path"`
	VocabPath ResolvedValue `json:"vocab_path"`
	PollSecs  ResolvedValue `json:"poll_secs"`
	LeadMins  ResolvedValue `json:"default_lead_mins"`
}

type fileConfig struct {
	DBPath    string `yaml:"db_path"`
	Segmenter struct {
		VocabPath string `yaml:"vocab_path"`
	} `yaml:"segmenter"`
	Remind struct {
		PollSecs        int `yaml:"poll_secs"`
		DefaultLeadMins int `yaml:"default_lead_mins"`
	} `yaml:"remind"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lichviet", "config.yaml")
}

// ResolveConfig merges defaults < config file < env < CLI flags.
func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{
		ConfigPath: path,
		PollSecs:   ResolvedValue{Value: "60", Source: SourceDefault, From: "built-in default"},
		LeadMins:   ResolvedValue{Value: "0", Source: SourceDefault, From: "built-in default"},
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}
	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.VocabPath, cfg.Segmenter.VocabPath, SourceConfig, path)
		if cfg.Remind.PollSecs > 0 {
			apply(&out.PollSecs, strconv.Itoa(cfg.Remind.PollSecs), SourceConfig, path)
		}
		if cfg.Remind.DefaultLeadMins > 0 {
			apply(&out.LeadMins, strconv.Itoa(cfg.Remind.DefaultLeadMins), SourceConfig, path)
		}
	}

	applyEnv(&out.DBPath, "LICHVIET_DB")
	applyEnv(&out.VocabPath, "LICHVIET_VOCAB")
	applyEnv(&out.PollSecs, "LICHVIET_POLL_SECS")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.VocabPath, opts.CLIVocabPath, SourceCLI, "--vocab")
	apply(&out.PollSecs, opts.CLIPollSecs, SourceCLI, "--interval")

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}
	if out.VocabPath.Value != "" {
		out.VocabPath.Value = expandUserPath(out.VocabPath.Value)
	}

	return out, nil
}

// PollInterval returns the reminder poll interval in whole seconds.
func (r ResolvedConfig) PollInterval() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.PollSecs.Value))
	if err != nil || n <= 0 {
		return 60
	}
	return n
}

// DefaultLeadMins returns the reminder lead applied to events whose request
// carried no explicit reminder clause. 0 means no implicit reminder.
func (r ResolvedConfig) DefaultLeadMins() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.LeadMins.Value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func apply(dst *ResolvedValue, value string, source ValueSource, from string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: env}
	}
}

func expandUserPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
