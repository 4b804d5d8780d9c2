package main

import (
	"context"
	"path/filepath"

	"github.com/hubastard/backdrop/engine/backdrop"
	"github.com/hubastard/backdrop/engine/config"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/platform"
	"github.com/hubastard/backdrop/engine/profiler"
	"github.com/spf13/cobra"
)

func newRunCmd(f *flags) *cobra.Command {
	var (
		watch   bool
		profile string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window with the animated background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, opts, err := f.load(cmd)
			if err != nil {
				return err
			}
			return run(cmd, f, cfg, opts, watch, profile)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-activate when the config file changes")
	cmd.Flags().StringVar(&profile, "profile", "", "write a speedscope profile of activation and frames to this path")
	return cmd
}

func run(cmd *cobra.Command, f *flags, cfg core.Config, opts backdrop.Options, watch bool, profile string) error {
	if profile != "" {
		profiler.Init(0)
	}
	win, err := platform.NewGLFWWindow(cfg, nil)
	if err != nil {
		core.Logger().Warn("no window available, writing a fallback snapshot instead", "err", err)
		return writeSnapshot(cfg.Width, cfg.Height, opts, 0, "backdrop.png")
	}
	defer win.Destroy()

	act := backdrop.Activate(win, win, opts)
	// Switching paths always builds a fresh activation.
	reactivate := func(next backdrop.Options) {
		act.Deactivate()
		opts = next
		act = backdrop.Activate(win, win, opts)
	}

	win.SetEventCallback(func(ev core.Event) {
		key, ok := ev.(core.EventKey)
		if !ok || !key.Down {
			return
		}
		switch key.Key {
		case core.KeyEscape:
			win.RequestClose()
		case core.KeyF:
			next := opts
			next.ForceFallback = !opts.ForceFallback
			reactivate(next)
		}
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if watch && f.configPath != "" {
		go func() {
			err := config.Watch(ctx, f.configPath, func(file *config.File) {
				next := f.override(cmd, file.Options())
				win.Post(func() { reactivate(next) })
			})
			if err != nil {
				core.Logger().Warn("config watch stopped", "path", filepath.Base(f.configPath), "err", err)
			}
		}()
	}

	win.Run()
	act.Deactivate()
	if profile != "" {
		if err := profiler.Dump(profile); err != nil {
			return err
		}
		core.Logger().Info("profile written", "path", profile)
	}
	return nil
}
