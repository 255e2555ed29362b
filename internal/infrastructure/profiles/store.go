package profiles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/freud/split-text-smartly/internal/core/domain"
)

type file struct {
	Profiles map[string]domain.SplitOptionsPatch `yaml:"profiles"`
}

// Store holds named option presets loaded from a YAML document:
//
//	profiles:
//	  sms:
//	    max_row_length: 160
//	    max_rows: 5
type Store struct {
	profiles map[string]domain.SplitOptionsPatch
}

func NewStore(profiles map[string]domain.SplitOptionsPatch) *Store {
	out := make(map[string]domain.SplitOptionsPatch, len(profiles))
	for name, patch := range profiles {
		out[normalizeName(name)] = patch
	}
	return &Store{profiles: out}
}

// Load reads profiles from path. An empty path yields an empty store.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return NewStore(nil), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	return Parse(bytes.NewReader(raw))
}

func Parse(r io.Reader) (*Store, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var f file
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, domain.WrapError(domain.ErrInvalidConfig, "decode profiles", err)
	}

	for name, patch := range f.Profiles {
		if normalizeName(name) == "" {
			return nil, domain.WrapError(domain.ErrInvalidConfig, "decode profiles", errors.New("profile name is empty"))
		}
		if err := patch.Apply(domain.DefaultSplitOptions()).Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return NewStore(f.Profiles), nil
}

func (s *Store) Get(name string) (domain.SplitOptionsPatch, error) {
	patch, ok := s.profiles[normalizeName(name)]
	if !ok {
		return domain.SplitOptionsPatch{}, domain.WrapError(domain.ErrProfileNotFound, "get profile", fmt.Errorf("name=%s", name))
	}
	return patch, nil
}

func (s *Store) List() []domain.SplitProfile {
	out := make([]domain.SplitProfile, 0, len(s.profiles))
	for name, patch := range s.profiles {
		out = append(out, domain.SplitProfile{Name: name, Options: patch})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
