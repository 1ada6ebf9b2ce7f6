// Package conformance runs YAML suites of source snippets against the
// checker, comparing the types and errors it reports with the expected ones.
package conformance

import (
	"bytes"
	"embed"
	"github.com/cottand/inferred/frontend/ilerr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io/fs"
	"path"
	"sort"
)

// Builtin holds the suites shipped with inferred, under suites/
//
//go:embed suites/*.yaml
var Builtin embed.FS

const BuiltinDir = "suites"

type Suite struct {
	Name    string       `yaml:"name"`
	Options SuiteOptions `yaml:"options"`
	Cases   []Case       `yaml:"cases"`

	// Path is the file the suite was loaded from
	Path string `yaml:"-"`
}

type SuiteOptions struct {
	CollapseInferredUnions bool `yaml:"collapseInferredUnions"`
}

type Case struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	// Types maps declaration names, or expression statements as written,
	// to the expected type. Results not listed are not checked.
	Types map[string]string `yaml:"types"`
	// Errors are the expected ilerr.ErrCode names, in the order they are reported
	Errors []string `yaml:"errors"`
}

// LoadSuite reads and validates the suite at path in fsys
func LoadSuite(fsys fs.FS, path string) (Suite, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Suite{}, errors.Wrapf(err, "could not read suite %s", path)
	}
	var suite Suite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return Suite{}, errors.Wrapf(err, "could not decode suite %s", path)
	}
	suite.Path = path
	if err := suite.validate(); err != nil {
		return Suite{}, errors.Wrapf(err, "invalid suite %s", path)
	}
	return suite, nil
}

// LoadDir loads every *.yaml suite directly under dir, sorted by path
func LoadDir(fsys fs.FS, dir string) ([]Suite, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, "could not list suites in %s", dir)
	}
	sort.Strings(paths)
	suites := make([]Suite, 0, len(paths))
	for _, p := range paths {
		suite, err := LoadSuite(fsys, p)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func (s Suite) validate() error {
	if s.Name == "" {
		return errors.New("suite has no name")
	}
	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return errors.Errorf("case %d has no name", i)
		}
		if seen[c.Name] {
			return errors.Errorf("case %s is defined more than once", c.Name)
		}
		seen[c.Name] = true
		for _, name := range c.Errors {
			if _, ok := ilerr.ParseErrCode(name); !ok {
				return errors.Errorf("case %s expects unknown error kind %q", c.Name, name)
			}
		}
	}
	return nil
}
