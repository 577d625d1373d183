package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the configured style profiles",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *studio.Service, styles *studio.StyleStore) error {
		out := cmd.OutOrStdout()
		for _, profile := range styles.List() {
			line := fmt.Sprintf("%s  %s", headerStyle.Render(profile.ID), profile.Name)
			if len(profile.Palette) > 0 {
				line += "  " + dimStyle.Render(strings.Join(profile.Palette, " "))
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return errs.Wrap(err, "write styles output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}
