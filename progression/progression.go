package progression

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/jsphweid/chordseq/model"
	"gopkg.in/yaml.v3"
)

//go:embed progressions.yaml
var defaultCatalog []byte

var (
	ErrIndexOutOfRange  = errors.New("progression index out of range")
	ErrEmptyCatalog     = errors.New("catalog has no progressions")
	ErrEmptyProgression = errors.New("progression has no chords")
)

type Catalog struct {
	Progressions []model.Progression `yaml:"progressions"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("embedded progressions are broken: " + err.Error())
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("could not parse progressions: %w", err)
	}
	if len(c.Progressions) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, p := range c.Progressions {
		if len(p.Chords) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%q)", ErrEmptyProgression, i, p.Name)
		}
	}
	return &c, nil
}

// Load reads a catalog from a YAML file. An empty path gives the built-in one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read progressions file: %w", err)
	}
	return Parse(data)
}

func (c *Catalog) Len() int {
	return len(c.Progressions)
}

func (c *Catalog) Get(i int) (model.Progression, error) {
	if i < 0 || i >= len(c.Progressions) {
		return model.Progression{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(c.Progressions))
	}
	p := c.Progressions[i]
	p.Chords = append([]string(nil), p.Chords...)
	return p, nil
}

// Pick chooses a progression with r so callers can seed the choice.
func (c *Catalog) Pick(r *rand.Rand) (int, model.Progression) {
	i := r.Intn(len(c.Progressions))
	p, _ := c.Get(i)
	return i, p
}
