// Package cli implements the skitter command line: a window, a terminal view
// and a headless PNG renderer over the same simulation.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phanxgames/skitter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// settings mirrors the config keys. Every key can be set in skitter.yaml,
// through a SKITTER_* environment variable, or by flag.
type settings struct {
	Speed  float64 `mapstructure:"speed"`
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Debug  bool    `mapstructure:"debug"`

	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`

	Window struct {
		FPS     bool `mapstructure:"fps"`
		Targets bool `mapstructure:"targets"`
	} `mapstructure:"window"`

	Render struct {
		Frames int    `mapstructure:"frames"`
		Out    string `mapstructure:"out"`
		Script string `mapstructure:"script"`
	} `mapstructure:"render"`

	Term struct {
		Sound bool `mapstructure:"sound"`
	} `mapstructure:"term"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("speed", skitter.DefaultConfig().TravelSpeed)
	v.SetDefault("width", 960)
	v.SetDefault("height", 640)
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("window.fps", false)
	v.SetDefault("window.targets", false)
	v.SetDefault("render.frames", 120)
	v.SetDefault("render.out", "out")
	v.SetDefault("render.script", "")
	v.SetDefault("term.sound", false)
}

// app carries state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     settings
	log     *zap.Logger
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// NewRootCmd builds the command tree. Each call gets its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:           "skitter",
		Short:         "A procedurally animated spider that walks after your pointer.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./skitter.yaml)")
	pf.Float64("speed", 0, "thorax travel speed in pixels per second")
	pf.Int("width", 0, "viewport width in pixels")
	pf.Int("height", 0, "viewport height in pixels")
	pf.Bool("debug", false, "log per-frame gait stats")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	for key, flag := range map[string]string{
		"speed":     "speed",
		"width":     "width",
		"height":    "height",
		"debug":     "debug",
		"log.level": "log-level",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.newWindowCmd(),
		a.newRenderCmd(),
		a.newTermCmd(),
		newVersionCmd(),
	)
	return root
}

// setup reads config and installs the logger.
func (a *app) setup() error {
	if err := a.readConfig(); err != nil {
		return err
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log, err := newLogger(a.cfg.Log.Level, a.cfg.Log.File)
	if err != nil {
		return err
	}
	a.log = log
	skitter.SetLogger(log)
	log.Debug("config loaded", zap.String("file", a.v.ConfigFileUsed()))
	return nil
}

// readConfig reads the config file, if any, and SKITTER_* env vars.
func (a *app) readConfig() error {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("skitter")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("SKITTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// newLogger builds a console logger at level. An empty file logs to stderr.
func newLogger(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zc.OutputPaths = []string{"stderr"}
	if file != "" {
		zc.OutputPaths = []string{file}
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zc.Build()
}

// newSpider builds a spider from settings at the given viewport size.
func (a *app) newSpider(width, height float64) (*skitter.Spider, error) {
	cfg := skitter.DefaultConfig()
	if a.cfg.Speed > 0 {
		cfg.TravelSpeed = a.cfg.Speed
	}
	sp, err := skitter.New(cfg, width, height)
	if err != nil {
		return nil, err
	}
	sp.SetDebugMode(a.cfg.Debug)
	return sp, nil
}
