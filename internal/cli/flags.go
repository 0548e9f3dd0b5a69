package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// outputFlags are shared by every command that writes a result.
type outputFlags struct {
	format   string
	preview  string
	output   string
	template string
}

func (o *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.format, "format", "f", "", "output format (text, json, yaml)")
	fs.StringVar(&o.preview, "preview", "", "colour swatches in text output (auto, always, never)")
	fs.StringVarP(&o.output, "output", "o", "", "write to file instead of stdout")
}

// registerTemplate adds --template for commands that produce a theme.
func (o *outputFlags) registerTemplate(fs *pflag.FlagSet) {
	fs.StringVarP(&o.template, "template", "t", "", "render through a text template (path or name in the template directory)")
}

func (o *outputFlags) apply(cmd *cobra.Command, a *app) {
	if cmd.Flags().Changed("format") {
		a.cfg.Output.Format = o.format
	}
	if cmd.Flags().Changed("preview") {
		a.cfg.Output.Preview = o.preview
	}
	if f := cmd.Flags().Lookup("template"); f != nil && f.Changed {
		a.cfg.Output.Template = o.template
	}
}

// imageFlags control how an image argument is loaded.
type imageFlags struct {
	maxDimension int
	scaler       string
	cache        bool
	insecure     bool
}

func (f *imageFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.maxDimension, "max-dimension", 0, "downscale images so the longest edge is at most this (0 keeps full size)")
	fs.StringVar(&f.scaler, "scaler", "", "downscaling interpolator (nearest, bilinear, catmullrom)")
	fs.BoolVar(&f.cache, "cache", false, "cache remote images on disk")
	fs.BoolVar(&f.insecure, "insecure", false, "allow plain http and private addresses for remote images")
}

func (f *imageFlags) apply(cmd *cobra.Command, a *app) {
	if cmd.Flags().Changed("max-dimension") {
		a.cfg.Image.MaxDimension = f.maxDimension
	}
	if cmd.Flags().Changed("scaler") {
		a.cfg.Image.Scaler = f.scaler
	}
	if cmd.Flags().Changed("cache") {
		a.cfg.Image.Cache = f.cache
	}
}

// quantizeFlags tune the quantizer.
type quantizeFlags struct {
	colours    int
	iterations int
	workers    int
}

func (q *quantizeFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&q.colours, "colours", "c", 0, "maximum number of quantized colours")
	fs.IntVar(&q.iterations, "iterations", 0, "maximum k-means iterations")
	fs.IntVar(&q.workers, "workers", 0, "k-means worker goroutines")
}

func (q *quantizeFlags) apply(cmd *cobra.Command, a *app) {
	if cmd.Flags().Changed("colours") {
		a.cfg.Quantize.MaxColors = q.colours
	}
	if cmd.Flags().Changed("iterations") {
		a.cfg.Quantize.MaxIterations = q.iterations
	}
	if cmd.Flags().Changed("workers") {
		a.cfg.Quantize.Workers = q.workers
	}
}
