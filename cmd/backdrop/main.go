package main

import (
	"log/slog"
	"os"

	"github.com/hubastard/backdrop/engine/backdrop"
	"github.com/hubastard/backdrop/engine/config"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath    string
	verbose       bool
	brightness    float32
	blobiness     float32
	particleCount float32
	energy        float32
	scanlines     bool
	forceFallback bool
}

func main() {
	if err := newRootCmd(&flags{}).Execute(); err != nil {
		core.Logger().Error("backdrop failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "backdrop",
		Short:         "Procedural shader background with a GPU-free fallback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if f.verbose {
				level = slog.LevelDebug
			}
			core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "TOML or YAML config file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	pf.Float32Var(&f.brightness, "brightness", 0, "override brightness")
	pf.Float32Var(&f.blobiness, "blobiness", 0, "override blobiness")
	pf.Float32Var(&f.particleCount, "particles", 0, "override particle count")
	pf.Float32Var(&f.energy, "energy", 0, "override energy")
	pf.BoolVar(&f.scanlines, "scanlines", true, "draw scanlines (--scanlines=false to disable)")
	pf.BoolVar(&f.forceFallback, "fallback", false, "skip the accelerated path")

	root.AddCommand(newRunCmd(f), newSnapshotCmd(f))
	return root
}

// load reads the config file, if any, and applies command-line overrides.
func (f *flags) load(cmd *cobra.Command) (core.Config, backdrop.Options, error) {
	cfg := core.DefaultConfig()
	var opts backdrop.Options
	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return cfg, opts, err
		}
		cfg = file.Window.Apply(cfg)
		opts = file.Options()
	}
	return cfg, f.override(cmd, opts), nil
}

func (f *flags) override(cmd *cobra.Command, opts backdrop.Options) backdrop.Options {
	changed := cmd.Flags().Changed
	if changed("brightness") {
		opts.Brightness = backdrop.Float(f.brightness)
	}
	if changed("blobiness") {
		opts.Blobiness = backdrop.Float(f.blobiness)
	}
	if changed("particles") {
		opts.ParticleCount = backdrop.Float(f.particleCount)
	}
	if changed("energy") {
		opts.Energy = backdrop.Float(f.energy)
	}
	if changed("scanlines") {
		opts.Scanlines = backdrop.Bool(f.scanlines)
	}
	if f.forceFallback {
		opts.ForceFallback = true
	}
	return opts
}
