// Package config resolves runtime configuration from, in ascending
// precedence, built-in defaults, the YAML config file, ZANTETSU_*
// environment variables and CLI flags. Every resolved value remembers
// where it came from so `zantetsu config` can explain itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zantetsu/zantetsu/internal/parser"
	"github.com/zantetsu/zantetsu/internal/scoring"
	"github.com/zantetsu/zantetsu/internal/types"
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
	ConfigPath string
	CLIMode    string
	CLITrustDB string
	CLIDevice  string
	CLINetwork string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	TrustDB ResolvedValue `json:"trust_db"`

	ParserMode          ResolvedValue `json:"parser_mode"`
	ConfidenceThreshold ResolvedValue `json:"confidence_threshold"`
	Statistical         ResolvedValue `json:"statistical"`

	ModelPath     ResolvedValue `json:"model_path"`
	TokenizerPath ResolvedValue `json:"tokenizer_path"`

	Device  ResolvedValue `json:"device"`
	Network ResolvedValue `json:"network"`
}

type fileConfig struct {
	TrustDB string `yaml:"trust_db"`
	Parser  struct {
		Mode                string `yaml:"mode"`
		ConfidenceThreshold string `yaml:"confidence_threshold"`
		Statistical         string `yaml:"statistical"`
	} `yaml:"parser"`
	Model struct {
		Path      string `yaml:"path"`
		Tokenizer string `yaml:"tokenizer"`
	} `yaml:"model"`
	Client struct {
		Device  string `yaml:"device"`
		Network string `yaml:"network"`
	} `yaml:"client"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".zantetsu", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.TrustDB, cfg.TrustDB, SourceConfig, path)
		apply(&out.ParserMode, cfg.Parser.Mode, SourceConfig, path)
		apply(&out.ConfidenceThreshold, cfg.Parser.ConfidenceThreshold, SourceConfig, path)
		apply(&out.Statistical, cfg.Parser.Statistical, SourceConfig, path)
		apply(&out.ModelPath, cfg.Model.Path, SourceConfig, path)
		apply(&out.TokenizerPath, cfg.Model.Tokenizer, SourceConfig, path)
		apply(&out.Device, cfg.Client.Device, SourceConfig, path)
		apply(&out.Network, cfg.Client.Network, SourceConfig, path)
	}

	applyEnv(&out.TrustDB, "ZANTETSU_TRUST_DB")
	applyEnv(&out.ParserMode, "ZANTETSU_MODE")
	applyEnv(&out.ConfidenceThreshold, "ZANTETSU_CONFIDENCE_THRESHOLD")
	applyEnv(&out.Statistical, "ZANTETSU_STATISTICAL")
	applyEnv(&out.ModelPath, "ZANTETSU_MODEL")
	applyEnv(&out.TokenizerPath, "ZANTETSU_TOKENIZER")
	applyEnv(&out.Device, "ZANTETSU_DEVICE")
	applyEnv(&out.Network, "ZANTETSU_NETWORK")

	apply(&out.ParserMode, opts.CLIMode, SourceCLI, "--mode")
	apply(&out.TrustDB, opts.CLITrustDB, SourceCLI, "--trust-db")
	apply(&out.Device, opts.CLIDevice, SourceCLI, "--device")
	apply(&out.Network, opts.CLINetwork, SourceCLI, "--network")

	if out.TrustDB.Value != "" {
		out.TrustDB.Value = expandUserPath(out.TrustDB.Value)
	}

	return out, nil
}

// EffectiveParserConfig converts the resolved string values into a
// parser configuration, filling unset fields from parser defaults.
func (r ResolvedConfig) EffectiveParserConfig() (parser.Config, error) {
	cfg := parser.DefaultConfig()

	mode, err := types.ParseParseMode(r.ParserMode.Value)
	if err != nil {
		return cfg, fmt.Errorf("resolving parser mode: %w", err)
	}
	cfg = cfg.WithMode(mode)

	if v := strings.TrimSpace(r.ConfidenceThreshold.Value); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("resolving confidence threshold: %w", err)
		}
		cfg = cfg.WithConfidenceThreshold(threshold)
	}

	if v := strings.TrimSpace(r.Statistical.Value); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("resolving statistical flag: %w", err)
		}
		cfg = cfg.WithStatistical(enabled)
	}

	return cfg, nil
}

// EffectiveClientContext converts the resolved device and network
// values into a client context, starting from the desktop defaults.
func (r ResolvedConfig) EffectiveClientContext() (scoring.ClientContext, error) {
	ctx := scoring.DefaultContext()

	device, err := scoring.ParseDeviceType(r.Device.Value)
	if err != nil {
		return ctx, fmt.Errorf("resolving device type: %w", err)
	}
	ctx.Device = device

	network, err := scoring.ParseNetworkQuality(r.Network.Value)
	if err != nil {
		return ctx, fmt.Errorf("resolving network quality: %w", err)
	}
	ctx.Network = network

	return ctx, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
