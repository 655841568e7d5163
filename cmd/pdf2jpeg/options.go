package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpauljoseph/pdf2jpeg/internal/config"
	"github.com/kpauljoseph/pdf2jpeg/internal/pdf"
	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
)

const (
	flagInputFile   = "input-file"
	flagInputFolder = "input-folder"
	flagOutputDir   = "output-dir"
	flagOutputBase  = "output-base"
	flagWidth       = "width"
	flagHeight      = "height"
	flagThumbOnly   = "thumbnail-only"
	flagThumbWidth  = "thumb-width"
	flagThumbHeight = "thumb-height"
	flagThumbSuffix = "thumb-suffix"
	flagConfig      = "config"
	flagRenderer    = "renderer"
	flagVerbose     = "verbose"
	flagDebug       = "debug"
)

type options struct {
	Request  models.ConversionRequest
	Renderer string
	Verbose  bool
	Debug    bool
}

func registerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP(flagInputFile, "i", "", "input PDF file to convert (single-file mode)")
	f.StringP(flagInputFolder, "F", "", "folder whose PDF files are all converted (not recursive)")
	f.StringP(flagOutputDir, "d", "", "output directory (default: current directory for a file, the input folder for a folder)")
	f.StringP(flagOutputBase, "o", "", "output file name base, e.g. 'output' or 'output.pdf' (single-file mode only);\nthe input PDF is also copied to <base>.pdf unless --thumbnail-only is set")
	f.IntP(flagWidth, "W", 0, "page image width in pixels; alone it keeps the aspect ratio")
	f.IntP(flagHeight, "H", 0, "page image height in pixels; alone it keeps the aspect ratio")
	f.Bool(flagThumbOnly, false, "only write a thumbnail of page 1, skip full page conversion")
	f.Int(flagThumbWidth, 0, "thumbnail width in pixels; alone it keeps the aspect ratio")
	f.Int(flagThumbHeight, 0, "thumbnail height in pixels; alone it keeps the aspect ratio")
	f.String(flagThumbSuffix, models.DefaultThumbSuffix, "thumbnail file name suffix")
	f.String(flagConfig, config.DefaultPath, "YAML file with default settings")
	f.String(flagRenderer, config.DefaultRenderer, fmt.Sprintf("rendering backend: %s or %s", pdf.RendererFitz, pdf.RendererPDFium))
	f.BoolP(flagVerbose, "v", false, "enable verbose logging")
	f.Bool(flagDebug, false, "enable debug mode with trace logging")

	cmd.MarkFlagsOneRequired(flagInputFile, flagInputFolder)
	cmd.MarkFlagsMutuallyExclusive(flagInputFile, flagInputFolder)
}

// parseOptions merges the command line over the config file. Flags given
// explicitly always win.
func parseOptions(f *pflag.FlagSet) (options, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return options{}, err
	}

	var opts options
	req := &opts.Request
	req.InputFile, _ = f.GetString(flagInputFile)
	req.InputFolder, _ = f.GetString(flagInputFolder)
	req.OutputBase, _ = f.GetString(flagOutputBase)
	req.OutputDir = stringOption(f, flagOutputDir, cfg.OutputDir)
	req.ThumbSuffix = stringOption(f, flagThumbSuffix, cfg.ThumbSuffix)

	if thumbOnly, _ := f.GetBool(flagThumbOnly); thumbOnly {
		req.Mode = models.ModeThumbnailOnly
	}

	if req.FullSize, err = sizeOption(f, flagWidth, flagHeight, cfg.PageSize); err != nil {
		return options{}, err
	}
	if req.ThumbSize, err = sizeOption(f, flagThumbWidth, flagThumbHeight, cfg.ThumbnailSize); err != nil {
		return options{}, err
	}

	opts.Renderer = stringOption(f, flagRenderer, cfg.Renderer)
	opts.Debug, _ = f.GetBool(flagDebug)
	opts.Verbose, _ = f.GetBool(flagVerbose)
	opts.Verbose = opts.Verbose || cfg.Verbose || opts.Debug

	return opts, nil
}

// loadConfig requires a config file named on the command line but tolerates
// a missing default one.
func loadConfig(f *pflag.FlagSet) (*config.Config, error) {
	path, _ := f.GetString(flagConfig)
	if f.Changed(flagConfig) {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadOptional(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func stringOption(f *pflag.FlagSet, name, fallback string) string {
	value, _ := f.GetString(name)
	if f.Changed(name) || fallback == "" {
		return value
	}
	return fallback
}

func sizeOption(f *pflag.FlagSet, widthFlag, heightFlag string, fallback config.Size) (models.SizeSpec, error) {
	base := fallback.Spec()
	width, err := dimension(f, widthFlag, base.Width)
	if err != nil {
		return models.SizeSpec{}, err
	}
	height, err := dimension(f, heightFlag, base.Height)
	if err != nil {
		return models.SizeSpec{}, err
	}
	return models.NewSizeSpec(width, height), nil
}

func dimension(f *pflag.FlagSet, name string, fallback *int) (*int, error) {
	value := fallback
	if f.Changed(name) {
		v, _ := f.GetInt(name)
		value = &v
	}
	if err := models.CheckDimension("--"+name, value); err != nil {
		return nil, err
	}
	return value, nil
}
