package loader

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by sources that do not know an identifier.
var ErrNotFound = errors.New("identifier not found")

// FileSource serves descriptors from a YAML or JSON list, typically written
// by an external introspection tool.
type FileSource struct {
	descriptors map[string]*Descriptor
}

// NewFileSource indexes descriptors by identifier. Later entries replace
// earlier ones with the same identifier.
func NewFileSource(descriptors []*Descriptor) *FileSource {
	s := &FileSource{descriptors: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if d == nil || d.Identifier == "" {
			continue
		}
		s.descriptors[d.Identifier] = d
	}
	return s
}

// ReadFileSource parses the descriptor file at path. JSON input is accepted
// because it is valid YAML.
func ReadFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read descriptors")
	}
	var descriptors []*Descriptor
	if err := yaml.Unmarshal(data, &descriptors); err != nil {
		return nil, errors.Wrapf(err, "parse descriptors %s", path)
	}
	return NewFileSource(descriptors), nil
}

func (s *FileSource) Describe(_ context.Context, identifier string) (*Descriptor, error) {
	d, ok := s.descriptors[identifier]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, identifier)
	}
	return d, nil
}
