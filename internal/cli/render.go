package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/skitter"
	"github.com/phanxgames/skitter/raster"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Simulate headless and write PNG frames",
		Long: `Render runs the simulation without a window.

With --script it plays a JSON input script and writes one PNG per snapshot
step. Without a script it lets the spider wander for --frames frames and
writes the final pose to <out>/skitter.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd)
		},
	}
	f := cmd.Flags()
	f.Int("frames", 0, "frames to simulate without a script")
	f.StringP("out", "o", "", "output directory")
	f.String("script", "", "JSON input script")
	_ = a.v.BindPFlag("render.frames", f.Lookup("frames"))
	_ = a.v.BindPFlag("render.out", f.Lookup("out"))
	_ = a.v.BindPFlag("render.script", f.Lookup("script"))
	return cmd
}

func (a *app) render(cmd *cobra.Command) error {
	rc := a.cfg.Render
	w, h := float64(a.cfg.Width), float64(a.cfg.Height)

	if rc.Script == "" {
		sp, err := a.newSpider(w, h)
		if err != nil {
			return err
		}
		path := filepath.Join(rc.Out, "skitter.png")
		if err := raster.RenderFrames(sp, rc.Frames, 16, path); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}

	data, err := os.ReadFile(rc.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	sc, err := skitter.LoadScript(data)
	if err != nil {
		return fmt.Errorf("%s: %w", rc.Script, err)
	}
	if sw, sh := sc.Size(); sw > 0 && sh > 0 {
		w, h = sw, sh
	}
	sp, err := a.newSpider(w, h)
	if err != nil {
		return err
	}
	paths, err := raster.RenderScript(sp, sc, rc.Out)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		a.log.Warn("script has no snapshot steps", zap.String("script", rc.Script))
	}
	return nil
}
