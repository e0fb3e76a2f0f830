package cli

import (
	"github.com/phanxgames/skitter"
	"github.com/phanxgames/skitter/termview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newTermCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run in the terminal; the spider follows the mouse",
		Long: `Term draws the spider with text cells, each covering 8x16 pixels.
Right click releases the pointer. Esc, q or Ctrl-C quits.

Console logging would corrupt the screen, so logs are dropped unless
log.file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Log.File == "" {
				skitter.SetLogger(zap.NewNop())
			}
			// Resized to the terminal on the first frame.
			sp, err := a.newSpider(float64(a.cfg.Width), float64(a.cfg.Height))
			if err != nil {
				return err
			}
			return termview.Run(cmd.Context(), sp, termview.Options{
				Sound:       a.cfg.Term.Sound,
				Speed:       a.cfg.Speed,
				ShowTargets: a.cfg.Window.Targets,
			})
		},
	}
	cmd.Flags().Bool("sound", false, "tick on every footfall")
	_ = a.v.BindPFlag("term.sound", cmd.Flags().Lookup("sound"))
	return cmd
}
