package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2jpeg/internal/pdf"
	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
	"github.com/kpauljoseph/pdf2jpeg/pkg/version"
)

var rootCmd = newRootCmd(afero.NewOsFs())

func newRootCmd(fs afero.Fs) *cobra.Command {
	var width, height, thumbWidth, thumbHeight int

	cmd := &cobra.Command{
		Use:     "pdfinfo <file.pdf>",
		Short:   "Show page sizes and the JPEG sizes pdf2jpeg would produce",
		Args:    cobra.ExactArgs(1),
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return fmt.Errorf("failed to read PDF: %w", err)
			}

			dims, err := pdf.NewInspector().PageDims(data)
			if err != nil {
				return fmt.Errorf("failed to get page dimensions: %w", err)
			}

			page, err := sizeFlags(cmd, "width", width, "height", height)
			if err != nil {
				return err
			}
			thumb, err := sizeFlags(cmd, "thumb-width", thumbWidth, "thumb-height", thumbHeight)
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), args[0], dims, page, thumb)
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	f := cmd.Flags()
	f.IntVarP(&width, "width", "W", 0, "page image width in pixels")
	f.IntVarP(&height, "height", "H", 0, "page image height in pixels")
	f.IntVar(&thumbWidth, "thumb-width", 0, "thumbnail width in pixels")
	f.IntVar(&thumbHeight, "thumb-height", 0, "thumbnail height in pixels")
	return cmd
}

func sizeFlags(cmd *cobra.Command, widthName string, width int, heightName string, height int) (models.SizeSpec, error) {
	w := flagValue(cmd, widthName, width)
	if err := models.CheckDimension("--"+widthName, w); err != nil {
		return models.SizeSpec{}, err
	}
	h := flagValue(cmd, heightName, height)
	if err := models.CheckDimension("--"+heightName, h); err != nil {
		return models.SizeSpec{}, err
	}
	return models.NewSizeSpec(w, h), nil
}

func flagValue(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func describe(w io.Writer, path string, dims []types.Dim, page, thumb models.SizeSpec) {
	fmt.Fprintf(w, "Analyzing PDF: %s\n", path)
	fmt.Fprintf(w, "Pages: %d\n", len(dims))
	fmt.Fprintf(w, "Page size: %s\n", page.Describe())

	for i, dim := range dims {
		pw, ph := pdf.PlannedSize(dim.Width, dim.Height, pdf.PageDPI, page)
		fmt.Fprintf(w, "\nPage %d:\n", i+1)
		fmt.Fprintf(w, "Dimensions (Width x Height): %.3f x %.3f points\n", dim.Width, dim.Height)
		fmt.Fprintf(w, "JPEG at %d DPI: %d x %d px\n", pdf.PageDPI, pw, ph)
	}

	tw, th := pdf.PlannedSize(dims[0].Width, dims[0].Height, pdf.ThumbnailDPI, thumb)
	fmt.Fprintf(w, "\nThumbnail (%s) at %d DPI: %d x %d px\n", thumb.Describe(), pdf.ThumbnailDPI, tw, th)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
