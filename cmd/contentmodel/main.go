package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cozy/contentmodel-go/docx"
	"github.com/cozy/contentmodel-go/internal/config"
	"github.com/cozy/contentmodel-go/internal/logger"
	"github.com/cozy/contentmodel-go/markdown"
	"github.com/cozy/contentmodel-go/model"
	"github.com/cozy/contentmodel-go/model2dom"
	"github.com/cozy/contentmodel-go/paste"
	"github.com/cozy/contentmodel-go/selection"
	"github.com/cozy/contentmodel-go/tonotion"
	"github.com/cozy/contentmodel-go/transform"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

var minifier = minify.New()

func init() {
	minifier.AddFunc("text/html", html.Minify)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "contentmodel: %v\n", err)
		os.Exit(1)
	}
}

func usage(flags *flag.FlagSet) func() {
	return func() {
		out := flags.Output()
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  contentmodel [flags] file.html|file.md|file.docx|-")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Reads a clipboard HTML dump, a markdown file or a Word document and")
		fmt.Fprintln(out, "writes it back as html, markdown, notion or json.")
		fmt.Fprintln(out)
		flags.PrintDefaults()
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("contentmodel", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	flags.Usage = usage(flags)

	configPath := flags.String("config", "contentmodel.toml", "Config file")
	sourceOnly := flags.Bool("source-only", false, "Print the detected paste source and exit")
	output := flags.String("output", "", "Output format: html, markdown, notion or json")
	minifyFlag := flags.Bool("minify", false, "Minify HTML output")
	indent := flags.Int("indent", 0, "Indent (or outdent when negative) every block this many times")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return flag.ErrHelp
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *output != "" {
		cfg.Output.Format = *output
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if *minifyFlag {
		cfg.Output.Minify = true
	}

	logger.Set(logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}))
	defer func() { _ = logger.L().Sync() }()

	input := flags.Arg(0)
	doc, source, err := load(ctx, cfg, input, stdin)
	if err != nil {
		return err
	}
	if *sourceOnly {
		_, err := fmt.Fprintln(stdout, source)
		return err
	}
	logger.L().Info("loaded document",
		zap.String("input", input),
		zap.String("source", source),
		zap.Int("blocks", len(doc.Blocks)))

	if *indent != 0 {
		indentAll(doc, *indent, cfg.Indent.StepPx)
	}
	return write(stdout, doc, cfg)
}

func defaultFormat(cfg *config.Config) *model.SegmentFormat {
	f := model.SegmentFormat{
		FontFamily: cfg.Format.DefaultFontFamily,
		FontSize:   cfg.Format.DefaultFontSize,
		TextColor:  cfg.Format.DefaultTextColor,
	}
	if model.SameSegmentFormat(f, model.SegmentFormat{}) {
		return nil
	}
	return &f
}

// load reads the input by extension. Anything but markdown and Word
// documents is handled as a clipboard HTML dump. The second result is the
// detected paste source, or the importer name.
func load(ctx context.Context, cfg *config.Config, input string, stdin io.Reader) (*model.Document, string, error) {
	ext := strings.ToLower(filepath.Ext(input))
	if ext == ".docx" {
		f, err := os.Open(input)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return nil, "", err
		}
		doc, err := docx.Import(f, info.Size())
		return doc, "docx", err
	}

	var data []byte
	var err error
	if input == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, "", err
	}

	if ext == ".md" || ext == ".markdown" {
		parser := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
		doc, err := markdown.ParseMarkdown(parser, data)
		return doc, "markdown", err
	}

	result, err := paste.ProcessPaste(ctx, paste.PasteInput{HTML: string(data)}, paste.Option{
		Sanitize:           cfg.Paste.Sanitize,
		ConvertSingleImage: cfg.Paste.ConvertSingleImage,
		DefaultFormat:      defaultFormat(cfg),
	})
	if err != nil {
		return nil, "", err
	}
	return result.Model, string(result.Source), nil
}

// indentAll selects the whole document and indents it times times.
func indentAll(doc *model.Document, times int, stepPx float64) {
	if len(doc.Blocks) == 0 {
		return
	}
	selection.SetSelection(doc, doc.Blocks[0], doc.Blocks[len(doc.Blocks)-1])
	op := transform.Indent
	if times < 0 {
		op, times = transform.Outdent, -times
	}
	for i := 0; i < times; i++ {
		transform.SetModelIndentation(doc, op, stepPx)
	}
	selection.SetSelection(doc)
}

func write(w io.Writer, doc *model.Document, cfg *config.Config) error {
	switch cfg.Output.Format {
	case config.OutputMarkdown:
		_, err := io.WriteString(w, markdown.DefaultSerializer.Serialize(doc)+"\n")
		return err
	case config.OutputNotion:
		return writeJSON(w, tonotion.CreatePageContent(doc))
	case config.OutputJSON:
		return writeJSON(w, doc)
	}

	out := model2dom.RenderHTML(doc)
	if cfg.Output.Minify {
		minified, err := minifier.String("text/html", out)
		if err != nil {
			logger.L().Warn("minify failed", zap.Error(err))
		} else {
			out = minified
		}
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
