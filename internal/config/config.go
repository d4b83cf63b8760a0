// Package config holds the refmd settings read from refmd.yml and adjusted by
// command-line flags.
package config

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/agentflare-ai/refmd/internal/loader"
	"github.com/agentflare-ai/refmd/internal/preprocess"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "refmd.yml"

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var (
	sortings = []string{loader.SortByName, loader.SortByLine}
	formats  = []string{FormatMarkdown, FormatHTML}
)

// Config is the complete set of options for one run.
type Config struct {
	// Modules lists module spec groups. Every entry becomes one document;
	// "a+,b" loads both a and b into the document named after a.
	Modules  []string `yaml:"modules"`
	BuildDir string   `yaml:"builddir"`
	// Sorting orders members by "name" or source "line".
	Sorting string `yaml:"sorting"`
	// Filter lists tags members must carry, such as "docstring".
	Filter        []string `yaml:"filter"`
	Preprocessors []string `yaml:"preprocessors"`
	PdmReorganize bool     `yaml:"pdm_reorganize"`

	RenderTOC            bool   `yaml:"render_toc"`
	RenderTOCDepth       int    `yaml:"render_toc_depth"`
	RenderSectionKind    bool   `yaml:"render_section_kind"`
	RenderSignatureBlock bool   `yaml:"render_signature_block"`
	SignatureLanguage    string `yaml:"signature_language"`

	Format string `yaml:"format"`
	// Descriptors names a YAML or JSON descriptor file to load from instead
	// of Go packages.
	Descriptors string `yaml:"descriptors"`
	// Unexported includes unexported Go declarations.
	Unexported bool `yaml:"unexported"`
}

func Default() *Config {
	return &Config{
		BuildDir:             "build/refmd",
		Sorting:              "line",
		Filter:               []string{"docstring"},
		Preprocessors:        []string{"sphinx", "pydoc"},
		PdmReorganize:        true,
		RenderTOC:            true,
		RenderTOCDepth:       2,
		RenderSectionKind:    true,
		RenderSignatureBlock: true,
		Format:               FormatMarkdown,
	}
}

// Load reads the configuration file at path over the defaults. An empty path
// means DefaultFile, which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()
	required := path != ""
	if !required {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "could not open config")
	}
	if err := cfg.Unmarshal(data); err != nil {
		return nil, errors.Wrapf(err, "could not parse config %s", path)
	}
	return cfg, nil
}

// Unmarshal decodes YAML into c. Keys not present keep their current value
// and unknown keys are rejected.
func (c *Config) Unmarshal(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Validate checks option values.
func (c *Config) Validate() error {
	if !slices.Contains(sortings, c.Sorting) {
		return errors.Errorf("invalid sorting %q, must be one of %s", c.Sorting, strings.Join(sortings, ", "))
	}
	for _, name := range c.Preprocessors {
		if !slices.Contains(preprocess.Names, name) {
			return errors.Errorf("unknown preprocessor %q", name)
		}
	}
	if c.RenderTOCDepth < 0 {
		return errors.Errorf("render_toc_depth must not be negative, got %d", c.RenderTOCDepth)
	}
	if !slices.Contains(formats, c.Format) {
		return errors.Errorf("invalid format %q, must be one of %s", c.Format, strings.Join(formats, ", "))
	}
	if c.BuildDir == "" {
		return errors.New("builddir must not be empty")
	}
	return nil
}

// ApplyFilter updates Filter from a comma separated list. Plain items are
// added when missing, items prefixed with '-' are removed.
func (c *Config) ApplyFilter(spec string) {
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if name, ok := strings.CutPrefix(item, "-"); ok {
			c.Filter = slices.DeleteFunc(c.Filter, func(s string) bool { return s == name })
			continue
		}
		if item != "" && !slices.Contains(c.Filter, item) {
			c.Filter = append(c.Filter, item)
		}
	}
}

// Extension returns the file extension of generated documents.
func (c *Config) Extension() string {
	if c.Format == FormatHTML {
		return ".html"
	}
	return ".md"
}
