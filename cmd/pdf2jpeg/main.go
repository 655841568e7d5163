package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdf2jpeg/internal/batch"
	"github.com/kpauljoseph/pdf2jpeg/internal/pdf"
	"github.com/kpauljoseph/pdf2jpeg/pkg/logger"
	"github.com/kpauljoseph/pdf2jpeg/pkg/version"
)

var exitCode int

var rootCmd = &cobra.Command{
	Use:   version.AppName,
	Short: "Convert PDF pages or first-page thumbnails to JPEG",
	Long: `pdf2jpeg converts PDF files into one JPEG per page, or into a single
thumbnail of the first page, for one file or for every PDF directly inside a
folder. Output images can be resized to a fixed width, height or both.

Without --output-dir, images are written to the current directory for a
single file and into the input folder for a folder.`,
	Args:    cobra.NoArgs,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode = run(cmd)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	registerFlags(rootCmd)
}

func run(cmd *cobra.Command) int {
	log := logger.New(
		logger.WithPrefix("[pdf2jpeg] "),
		logger.WithFlags(0),
	)

	opts, err := parseOptions(cmd.Flags())
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	log.SetVerbose(opts.Verbose)
	if opts.Debug {
		log.SetLevel(logger.LevelTrace)
	}
	log.Debug("%s", version.GetVersionInfo())
	log.Trace("Build details:\n%s", version.GetDetailedVersionInfo())
	log.Debug("Using renderer: %s", opts.Renderer)

	fs := afero.NewOsFs()
	renderer, err := pdf.NewRenderer(opts.Renderer, fs)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	defer renderer.Close()

	writer := pdf.NewWriter(renderer, pdf.NewJPEGEncoder(fs), fs, log)
	driver := batch.New(writer, fs, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := driver.Run(ctx, opts.Request)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	return outcome.ExitCode()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
