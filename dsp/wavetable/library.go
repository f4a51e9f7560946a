package wavetable

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed equations.yaml
var libraryYAML []byte

// LibraryEntry is one named starter equation.
type LibraryEntry struct {
	Name        string `yaml:"name"`
	Equation    string `yaml:"equation"`
	Description string `yaml:"description"`
}

type libraryFile struct {
	Equations []LibraryEntry `yaml:"equations"`
}

var (
	libraryOnce    sync.Once
	libraryEntries []LibraryEntry
	libraryErr     error
)

func loadLibrary() {
	var file libraryFile
	if err := yaml.Unmarshal(libraryYAML, &file); err != nil {
		libraryErr = fmt.Errorf("equation library: %w", err)
		return
	}
	libraryEntries = file.Equations
}

// Library returns the embedded starter equations in file order.
// The returned slice is a copy.
func Library() ([]LibraryEntry, error) {
	libraryOnce.Do(loadLibrary)
	if libraryErr != nil {
		return nil, libraryErr
	}

	out := make([]LibraryEntry, len(libraryEntries))
	copy(out, libraryEntries)
	return out, nil
}

// LookupEquation finds a library entry by name.
func LookupEquation(name string) (LibraryEntry, error) {
	entries, err := Library()
	if err != nil {
		return LibraryEntry{}, err
	}

	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}

	return LibraryEntry{}, fmt.Errorf("equation library: no entry named %q", name)
}
