package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agentflare-ai/refmd/internal/config"
	"github.com/agentflare-ai/refmd/internal/document"
	"github.com/agentflare-ai/refmd/internal/loader"
	"github.com/agentflare-ai/refmd/internal/preprocess"
	"github.com/agentflare-ai/refmd/internal/render"
)

type options struct {
	configPath   string
	builddir     string
	sorting      string
	filter       string
	outputPath   string
	format       string
	descriptors  string
	tocDepth     int
	plain        bool
	noTOC        bool
	noReorganize bool
	unexported   bool
	verbose      bool
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, modules []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		modules = cfg.Modules
	}
	if len(modules) == 0 {
		return errors.New("no modules specified")
	}
	logger := newLogger(app.stderr, app.opts.verbose)

	source, language, err := newSource(cfg)
	if err != nil {
		return err
	}
	if cfg.SignatureLanguage == "" {
		cfg.SignatureLanguage = language
	}

	root, err := loadRoot(ctx, cfg, source, modules, logger)
	if err != nil {
		return err
	}
	group, err := preprocess.New(cfg.Preprocessors, preprocess.Options{Reorganize: cfg.PdmReorganize})
	if err != nil {
		return err
	}
	if err := group.Preprocess(root); err != nil {
		return err
	}
	root.Reindex()

	renderer := render.New(render.Options{
		TOC:               cfg.RenderTOC,
		TOCDepth:          cfg.RenderTOCDepth,
		SectionKind:       cfg.RenderSectionKind,
		SignatureBlock:    cfg.RenderSignatureBlock,
		SignatureLanguage: cfg.SignatureLanguage,
	})

	if app.opts.plain {
		doc, err := root.Join("index" + cfg.Extension())
		if err != nil {
			return err
		}
		data, err := renderDocument(renderer, doc, cfg.Format)
		if err != nil {
			return err
		}
		return writeOutput(app.opts.outputPath, app.stdout, data)
	}

	rep := newReporter(app.stderr)
	for _, doc := range root.Documents() {
		data, err := renderDocument(renderer, doc, cfg.Format)
		if err != nil {
			return err
		}
		target := filepath.Join(cfg.BuildDir, filepath.FromSlash(doc.Path))
		if err := writeOutput(target, app.stdout, data); err != nil {
			return err
		}
		logger.Debug("wrote document", "path", target, "bytes", len(data))
		rep.wrote(target, len(data), len(doc.Sections()))
	}
	rep.summary(cfg.BuildDir)
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func (app *cliApp) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(app.opts.configPath)
	if err != nil {
		return nil, err
	}
	changed := app.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if changed("builddir") {
		cfg.BuildDir = app.opts.builddir
	}
	if changed("sorting") {
		cfg.Sorting = app.opts.sorting
	}
	if changed("filter") {
		cfg.ApplyFilter(app.opts.filter)
	}
	if changed("format") {
		cfg.Format = app.opts.format
	}
	if changed("descriptors") {
		cfg.Descriptors = app.opts.descriptors
	}
	if changed("toc-depth") {
		cfg.RenderTOCDepth = app.opts.tocDepth
	}
	if app.opts.noTOC {
		cfg.RenderTOC = false
	}
	if app.opts.noReorganize {
		cfg.PdmReorganize = false
	}
	if app.opts.unexported {
		cfg.Unexported = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSource picks the descriptor file when configured and Go packages
// otherwise. It also returns the language used for signature blocks.
func newSource(cfg *config.Config) (loader.Source, string, error) {
	if cfg.Descriptors != "" {
		src, err := loader.ReadFileSource(cfg.Descriptors)
		if err != nil {
			return nil, "", err
		}
		return src, "python", nil
	}
	src := loader.NewGoSource()
	src.Unexported = cfg.Unexported
	return src, "go", nil
}

// loadRoot builds one document per module entry.
func loadRoot(ctx context.Context, cfg *config.Config, source loader.Source, modules []string, logger *slog.Logger) (*document.Root, error) {
	ld := loader.New(source, loader.Options{Sorting: cfg.Sorting, Filter: cfg.Filter}, logger)
	root := document.NewRoot()
	for _, entry := range modules {
		doc := document.NewDocument(loader.DocumentPath(entry, cfg.Extension()))
		if err := ld.LoadDocument(ctx, entry, doc); err != nil {
			return nil, err
		}
		if err := root.AddDocument(doc); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func renderDocument(r *render.Renderer, doc *document.Document, format string) ([]byte, error) {
	data := r.Bytes(doc)
	if format != config.FormatHTML {
		return data, nil
	}
	var buf bytes.Buffer
	if err := render.HTML(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
