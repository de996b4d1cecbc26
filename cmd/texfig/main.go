package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wudi/texfig/observability"
	"github.com/wudi/texfig/pst"
	"github.com/wudi/texfig/recovery"
	"github.com/wudi/texfig/shape"
	"github.com/wudi/texfig/svg"
)

type options struct {
	inPath  string
	outPath string
	from    string
	to      string
	verbose bool
	strict  bool
	picture bool
	timeout time.Duration
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "texfig: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "texfig: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: texfig [flags] <file>\n")
		flag.PrintDefaults()
	}
	from := flag.String("from", "", "Input format: pst or svg (default: from the file extension)")
	to := flag.String("to", "", "Output format: pst or svg (default: the other format)")
	out := flag.String("o", "", "Output file (default: stdout)")
	verbose := flag.Bool("v", false, "Log skipped macros and nodes")
	strict := flag.Bool("strict", false, "Stop at the first malformed macro or node")
	picture := flag.Bool("picture", true, "Wrap PSTricks output in a pspicture environment")
	timeout := flag.Duration("plot-timeout", shape.DefaultSampleTimeout, "Time allowed to sample each plot")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing input file")
	}
	opts.inPath = flag.Arg(0)
	opts.outPath = *out
	opts.verbose = *verbose
	opts.strict = *strict
	opts.picture = *picture
	opts.timeout = *timeout

	opts.from = strings.ToLower(*from)
	if opts.from == "" {
		switch strings.ToLower(filepath.Ext(opts.inPath)) {
		case ".svg":
			opts.from = "svg"
		default:
			opts.from = "pst"
		}
	}
	opts.to = strings.ToLower(*to)
	if opts.to == "" {
		opts.to = "svg"
		if opts.from == "svg" {
			opts.to = "pst"
		}
	}
	for _, f := range []string{opts.from, opts.to} {
		if f != "pst" && f != "svg" {
			return options{}, fmt.Errorf("unknown format %q", f)
		}
	}
	return opts, nil
}

func run(opts options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := observability.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	var strategy recovery.Strategy
	if opts.strict {
		strategy = recovery.NewStrictStrategy()
	}

	src, err := os.ReadFile(opts.inPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var (
		d    *shape.Drawing
		errs recovery.Log
	)
	switch opts.from {
	case "pst":
		res := pst.Parse(string(src), pst.Config{
			Recovery:      strategy,
			Logger:        logger.With(observability.String(observability.FieldComponent, "pst")),
			SampleTimeout: opts.timeout,
		})
		d, errs = res.Drawing, res.Errors
	case "svg":
		res, err := svg.Read(bytes.NewReader(src), svg.Config{
			Recovery:      strategy,
			Logger:        logger.With(observability.String(observability.FieldComponent, "svg")),
			SampleTimeout: opts.timeout,
		})
		if err != nil {
			return fmt.Errorf("read svg: %w", err)
		}
		d, errs = res.Drawing, res.Errors
	}
	logger.Info("input read",
		observability.String("file", opts.inPath),
		observability.Int("shapes", d.Len()),
		observability.Int("errors", len(errs)))
	if opts.strict && !errs.Empty() {
		return errs.Err()
	}

	var w io.Writer = os.Stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.to {
	case "pst":
		code, err := pst.Generate(d, pst.Options{Picture: opts.picture})
		if err != nil {
			return fmt.Errorf("generate pst: %w", err)
		}
		if _, err := io.WriteString(w, code+"\n"); err != nil {
			return fmt.Errorf("write pst: %w", err)
		}
	case "svg":
		doc, err := svg.Generate(d)
		if err != nil {
			return fmt.Errorf("generate svg: %w", err)
		}
		if err := svg.Encode(w, doc); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}
