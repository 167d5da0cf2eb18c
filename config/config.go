package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is a viper instance with our keys. Settings come from, in
// increasing order of precedence: defaults, DRAGONSOL_* environment
// variables, then command-line flags.
type Config struct {
	*viper.Viper
}

const (
	ConfigDebug               = "debug"
	ConfigSeed                = "seed"
	ConfigPerftThreads        = "perft-threads"
	ConfigPerftMemoryFraction = "perft-memory-fraction"
	ConfigHistoryFile         = "history-file"
	ConfigCPUProfile          = "cpu-profile"
)

const envPrefix = "dragonsol"

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dragonsol", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Uint64(ConfigSeed, 0, "seed of the first deal; 0 picks a random one")
	fs.Int(ConfigPerftThreads, 0, "goroutines for perft; 0 means one per CPU")
	fs.Float64(ConfigPerftMemoryFraction, 0.05,
		"fraction of system memory for the perft transposition table; 0 turns it off")
	fs.String(ConfigHistoryFile, filepath.Join(os.TempDir(), "dragonsol_readline.tmp"),
		"file for shell history")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	return fs
}

// DefaultConfig has every key at its default value, ignoring the
// environment. Tests use it.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	fs := flagSet()
	fs.VisitAll(func(f *pflag.Flag) {
		c.SetDefault(f.Name, f.DefValue)
	})
	return c
}

// Load reads the environment and then args, which are --key=value flags.
// Arguments that are not flags are left for the caller in Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.Set("args", fs.Args())
	return nil
}

// Args are the command-line arguments left over after the flags.
func (c *Config) Args() []string {
	return c.GetStringSlice("args")
}

// SanitizedSettings returns every setting, with the user's home directory
// shortened to ~ so settings can be logged.
func (c *Config) SanitizedSettings() map[string]any {
	home, _ := os.UserHomeDir()
	settings := map[string]any{}
	for _, k := range c.AllKeys() {
		v := c.Get(k)
		if s, ok := v.(string); ok && home != "" && strings.HasPrefix(s, home) {
			v = "~" + strings.TrimPrefix(s, home)
		}
		settings[k] = v
	}
	return settings
}
