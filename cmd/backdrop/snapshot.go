package main

import (
	"time"

	"github.com/hubastard/backdrop/engine/assets"
	"github.com/hubastard/backdrop/engine/backdrop"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/hubastard/backdrop/engine/platform"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(f *flags) *cobra.Command {
	var (
		out    string
		at     time.Duration
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the fallback gradient to a PNG without a GPU",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, opts, err := f.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				cfg.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Height = height
			}
			return writeSnapshot(cfg.Width, cfg.Height, opts, at, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "backdrop.png", "output PNG path")
	cmd.Flags().DurationVar(&at, "at", 0, "animation time to capture")
	cmd.Flags().IntVar(&width, "width", 0, "image width")
	cmd.Flags().IntVar(&height, "height", 0, "image height")
	return cmd
}

func writeSnapshot(w, h int, opts backdrop.Options, at time.Duration, out string) error {
	host := platform.NewHeadless(w, h)
	act := backdrop.Activate(host, host, opts)
	defer act.Deactivate()

	img, err := host.Snapshot(at)
	if err != nil {
		return err
	}
	if err := assets.WritePNG(out, img); err != nil {
		return err
	}
	core.Logger().Info("snapshot written", "path", out, "w", w, "h", h, "at", at)
	return nil
}
