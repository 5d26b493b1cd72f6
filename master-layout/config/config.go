package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lcyvin/i3wm-master-layout/master-layout/types"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppName   = "i3wm-master-layout"
	EnvPrefix = "MASTER_LAYOUT"
)

// Config is read once at startup and never changed afterwards.
type Config struct {
	ExcludeWorkspaces []string         `mapstructure:"exclude-workspaces" yaml:"exclude-workspaces"`
	Outputs           []string         `mapstructure:"outputs" yaml:"outputs"`
	Nested            bool             `mapstructure:"nested" yaml:"nested"`
	StackLayout       types.LayoutType `mapstructure:"stack-layout" yaml:"stack-layout"`
	DisableRearrange  bool             `mapstructure:"disable-rearrange" yaml:"disable-rearrange"`
	LogLevel          string           `mapstructure:"log-level" yaml:"log-level"`
	RestartBackoff    time.Duration    `mapstructure:"restart-backoff" yaml:"restart-backoff"`
	RestartThreshold  float64          `mapstructure:"restart-threshold" yaml:"restart-threshold"`
}

func Default() Config {
	return Config{
		StackLayout:      types.DefaultStackLayout,
		LogLevel:         "info",
		RestartBackoff:   15 * time.Second,
		RestartThreshold: 5,
	}
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringSliceP("exclude-workspaces", "e", nil, "workspaces that should be ignored (ws1,ws2,..)")
	fs.StringSliceP("outputs", "o", nil, "outputs that should be used instead of all (HDMI-0,DP-0,..)")
	fs.BoolP("nested", "n", false, "also move new windows which are created in nested containers")
	fs.StringP("stack-layout", "l", string(d.StackLayout), `the stack layout ("tabbed", "stacked", "splitv")`)
	fs.Bool("disable-rearrange", false, "disable the rearrangement of windows when the master window disappears")
	fs.String("log-level", d.LogLevel, "log level (debug|info|warn|error)")
	fs.Duration("restart-backoff", d.RestartBackoff, "pause before reconnecting after repeated failures (must be positive)")
	fs.Float64("restart-threshold", d.RestartThreshold, "failures tolerated before backing off")
}

// NewViper returns a viper instance bound to fs, the environment and the
// config file. explicitPath, when set, must exist.
func NewViper(fs *pflag.FlagSet, explicitPath string) (*viper.Viper, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("stack-layout", string(d.StackLayout))
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("restart-backoff", d.RestartBackoff)
	v.SetDefault("restart-threshold", d.RestartThreshold)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	return v, nil
}

func SearchPaths() []string {
	paths := make([]string, 0, 3)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, AppName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName))
	}
	return append(paths, ".")
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	conf := Default()

	if err := v.Unmarshal(&conf); err != nil {
		return conf, errors.Wrap(err, "decode config")
	}
	conf.ExcludeWorkspaces = clean(conf.ExcludeWorkspaces)
	conf.Outputs = clean(conf.Outputs)

	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}

func (c Config) Validate() error {
	if !c.StackLayout.Stackable() {
		return errors.Errorf("invalid stack layout %q (expected tabbed, stacked or splitv)", c.StackLayout)
	}
	if c.RestartBackoff <= 0 {
		return errors.New("restart-backoff must be positive")
	}
	if c.RestartThreshold <= 0 {
		return errors.New("restart-threshold must be positive")
	}
	return nil
}

func (c Config) ExcludesWorkspace(name string) bool {
	return in(name, c.ExcludeWorkspaces)
}

// AllowsOutput is true for every output when no output list is configured.
func (c Config) AllowsOutput(name string) bool {
	return len(c.Outputs) == 0 || in(name, c.Outputs)
}

func in(i string, col []string) bool {
	for _, v := range col {
		if i == v {
			return true
		}
	}
	return false
}

func clean(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
