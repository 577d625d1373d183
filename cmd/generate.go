package cmd

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap"
	"github.com/Krosebrook/Flash-n-Frame/internal/bootstrap/logging"
	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate infographics and interface code",
}

var generateRepoCmd = &cobra.Command{
	Use:   "repo <owner/name[@branch]>",
	Short: "Generate an infographic from a hosted repository",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		styleID, _ := cmd.Flags().GetString("style")

		gen, err := svc.GenerateFromRepo(cmd.Context(), studio.RepoInput{
			RepoRef: cmd.Flags().Arg(0),
			StyleID: styleID,
		})
		if err != nil {
			return errs.Wrap(err, "generate repository infographic")
		}
		return writeArtifact(cmd, gen)
	}),
}

var generateArticleCmd = &cobra.Command{
	Use:   "article <url>",
	Short: "Generate an infographic from a web article",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		styleID, _ := cmd.Flags().GetString("style")

		gen, err := svc.GenerateFromArticle(cmd.Context(), studio.ArticleInput{
			URL:     cmd.Flags().Arg(0),
			StyleID: styleID,
		})
		if err != nil {
			return errs.Wrap(err, "generate article infographic")
		}
		return writeArtifact(cmd, gen)
	}),
}

var generateStyleCmd = &cobra.Command{
	Use:   "style <image-file>",
	Short: "Re-render an image in a configured style",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		styleID, _ := cmd.Flags().GetString("style")
		path := cmd.Flags().Arg(0)

		data, err := os.ReadFile(path)
		if err != nil {
			return errs.Wrapf(err, "read image %q", path)
		}

		gen, err := svc.StyleTransfer(cmd.Context(), studio.StyleTransferInput{
			Name:     filepath.Base(path),
			MIMEType: mimeTypeFor(path),
			Image:    data,
			StyleID:  styleID,
		})
		if err != nil {
			return errs.Wrap(err, "style transfer")
		}
		return writeArtifact(cmd, gen)
	}),
}

var generateUICmd = &cobra.Command{
	Use:   "ui [description]",
	Short: "Generate interface code from a description or a mock image",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *studio.Service, _ *studio.StyleStore) error {
		in := studio.UICodeInput{Description: strings.Join(cmd.Flags().Args(), " ")}

		if mockPath, _ := cmd.Flags().GetString("mock"); mockPath != "" {
			data, err := os.ReadFile(mockPath)
			if err != nil {
				return errs.Wrapf(err, "read mock image %q", mockPath)
			}
			in.Image = data
			in.MIMEType = mimeTypeFor(mockPath)
		}

		gen, err := svc.GenerateUICode(cmd.Context(), in)
		if err != nil {
			return errs.Wrap(err, "generate ui code")
		}
		return writeArtifact(cmd, gen)
	}),
}

// writeArtifact saves the payload next to the working directory and
// prints where it landed.
func writeArtifact(cmd *cobra.Command, gen domainstudio.Generation) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = "flashnframe-" + gen.ID + extensionFor(gen)
	}

	if err := os.WriteFile(out, gen.Payload, 0o644); err != nil {
		return errs.Wrapf(err, "write artifact %q", out)
	}

	logging.Info(cmd.Context(), "artifact saved",
		slog.String("generation_id", gen.ID),
		slog.String("path", out),
	)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", gen.Kind, gen.SourceRef, out); err != nil {
		return errs.Wrap(err, "write generate output")
	}
	if gen.Summary != "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), gen.Summary); err != nil {
			return errs.Wrap(err, "write generate output")
		}
	}
	return nil
}

func extensionFor(gen domainstudio.Generation) string {
	switch gen.MIMEType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "text/plain":
		if gen.Kind == domainstudio.KindUICode {
			return ".html"
		}
		return ".txt"
	default:
		return ".bin"
	}
}

func mimeTypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateRepoCmd, generateArticleCmd, generateStyleCmd, generateUICmd)

	for _, sub := range []*cobra.Command{generateRepoCmd, generateArticleCmd, generateStyleCmd} {
		sub.Flags().String("style", "", "Style profile id (first configured profile when empty)")
	}
	generateUICmd.Flags().String("mock", "", "Path to a mock image")
	for _, sub := range []*cobra.Command{generateRepoCmd, generateArticleCmd, generateStyleCmd, generateUICmd} {
		sub.Flags().String("out", "", "Output file path")
	}
}
