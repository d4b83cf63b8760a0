// # refmd
//
// `refmd` renders API reference documentation as hybrid Markdown/HTML. It
// loads the documented objects from Go packages (via `golang.org/x/tools`) or
// from a descriptor file produced by an external introspection tool, rewrites
// docstrings into Markdown and writes one document per module.
//
// Key capabilities:
//
//   - module specs with depth markers: `pkg` documents the package only,
//     `pkg+` adds its members and `pkg++` the members of those.
//   - several specs separated by commas are merged into one document named
//     after the first one.
//   - docstring conventions: `# Parameters`, `# Returns`, `# Raises` and
//     similar headings, Sphinx `:param x:` fields, and `#Name` references.
//   - package members grouped under "Data Members", "Functions" and
//     "Classes" headings.
//   - a table of contents linking to `<hN id="py-...">` anchors.
//   - `--plain` mode writing a single document to stdout or a file, and
//     `--format html` for HTML output.
//
// ## Usage
//
//	refmd [flags] [module[+...][,module...]]...
//
// Examples:
//
//   - Document a package and its members into build/refmd:
//
//     refmd ./internal/loader++
//
//   - Print a single document to stdout:
//
//     refmd --plain ./internal/document+
//
//   - Render from a descriptor file sorted by name:
//
//     refmd --descriptors api.yml --sorting name mypkg.mod++
//
// ## Configuration
//
// Settings are read from `refmd.yml` in the working directory, or from the
// file given with `--config`:
//
//	modules:
//	  - ./internal/loader++
//	builddir: build/refmd
//	sorting: line
//	filter: [docstring]
//	preprocessors: [sphinx, pydoc]
//	pdm_reorganize: true
//	render_toc: true
//	render_toc_depth: 2
//	render_section_kind: true
//	render_signature_block: true
//
// ## Supported Flags
//
//   - `--builddir DIR`: override the build directory.
//   - `--sorting name|line`: member order.
//   - `--filter a,-b`: add filter tag `a` and remove tag `b`.
//   - `--plain` and `-o FILE`: single document output.
//   - `--format markdown|html`: output format.
//   - `--descriptors FILE`: load from a YAML or JSON descriptor list.
//   - `--no-toc`, `--toc-depth N`: table of contents control.
//   - `--no-reorganize`: keep members in source order.
//   - `-u`: include unexported Go declarations.
//   - `-v`: debug logging on stderr.
//
// ## Shell Completion
//
//	refmd completion bash        # bash
//	refmd completion zsh         # zsh
//	refmd completion fish | source
//	refmd completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
// `refmd gen-docs ./docs/cli` writes one Markdown file per command.
package main
