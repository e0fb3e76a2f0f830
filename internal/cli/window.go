package cli

import (
	"github.com/phanxgames/skitter/ebitenview"
	"github.com/spf13/cobra"
)

func (a *app) newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open a window; the spider follows the mouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := a.newSpider(float64(a.cfg.Width), float64(a.cfg.Height))
			if err != nil {
				return err
			}
			return ebitenview.Run(sp, ebitenview.RunConfig{
				Title:         "skitter",
				Width:         a.cfg.Width,
				Height:        a.cfg.Height,
				ShowFPS:       a.cfg.Window.FPS,
				ShowTargets:   a.cfg.Window.Targets,
				Speed:         a.cfg.Speed,
				ScreenshotDir: a.cfg.Render.Out,
			})
		},
	}
	cmd.Flags().Bool("fps", false, "show FPS and gait counters")
	cmd.Flags().Bool("targets", false, "mark footholds of stepping legs")
	_ = a.v.BindPFlag("window.fps", cmd.Flags().Lookup("fps"))
	_ = a.v.BindPFlag("window.targets", cmd.Flags().Lookup("targets"))
	return cmd
}
