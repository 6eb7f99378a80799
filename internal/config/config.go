package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath      string `mapstructure:"data_path" yaml:"data_path"`
	ListenAddr    string `mapstructure:"listen_addr" yaml:"listen_addr"`
	ReportDir     string `mapstructure:"report_dir" yaml:"report_dir"`
	TableRowLimit int    `mapstructure:"table_row_limit" yaml:"table_row_limit"`
	ChartWidth    int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int    `mapstructure:"chart_height" yaml:"chart_height"`
	// OutlierThreshold is the robust Z-score cutoff for the outlier count
	// in summaries; 0 keeps the built-in default.
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.claimloom/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".claimloom")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_path", "insurance_claims_data.csv")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("table_row_limit", 30)
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 400)
	v.SetDefault("outlier_threshold", 3.5)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".claimloom")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ReportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ReportDir = filepath.Join(home, ".claimloom", "reports")
	}
	return &c, nil
}
