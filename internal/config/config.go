// Package config loads .difflint.yml (or .difflint.toml, or the legacy JSON
// .difflintrc) and merges it over the built-in defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

// PathPlaceholder is replaced with the file path in linter commands.
const PathPlaceholder = "{path}"

// maxConfigSize caps how much of a config file is read (1 MB).
const maxConfigSize = 1 << 20

// FileNames lists the config files looked up at the repository root, in order.
var FileNames = []string{".difflint.yml", ".difflint.yaml", ".difflint.toml", ".difflintrc"}

// Language maps file extensions to the linters run on them.
type Language struct {
	Extensions []string `yaml:"extensions" toml:"extensions"`
	Linters    []string `yaml:"linters" toml:"linters"`
}

// Linter describes how to run one external lint tool.
type Linter struct {
	Command []string `yaml:"command" toml:"command"`
	Format  string   `yaml:"format" toml:"format"`
}

// Config represents the difflint configuration.
type Config struct {
	Languages map[string]Language `yaml:"languages,omitempty" toml:"languages"`
	Linters   map[string]Linter   `yaml:"linters,omitempty" toml:"linters"`
	Ignore    []string            `yaml:"ignore,omitempty" toml:"ignore"`
	MultiFile string              `yaml:"multi_file,omitempty" toml:"multi_file"`
	Collation string              `yaml:"collation,omitempty" toml:"collation"`
	LogFile   string              `yaml:"log_file,omitempty" toml:"log_file"`
	Workers   int                 `yaml:"workers,omitempty" toml:"workers"`
	Fail      bool                `yaml:"fail,omitempty" toml:"fail"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: invalid built-in default.yml: %v", err))
	}
	return cfg
}

// Load reads the first config file found in dir and merges it over the
// defaults. The returned path is empty when no file was found, in which case
// the defaults are returned unchanged.
func Load(dir string) (Config, string, error) {
	custom, path, err := LoadFile(dir)
	if err != nil {
		return Config{}, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg := Merge(Default(), custom)
	if err := cfg.Validate(); err != nil {
		return Config{}, path, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// LoadFile reads the first config file found in dir without applying
// defaults. If no config file is found, it returns a zero Config (not an error).
func LoadFile(dir string) (Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, "", fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > maxConfigSize {
			return Config{}, "", fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, "", fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		switch {
		case filepath.Ext(name) == ".toml":
			err = toml.Unmarshal(data, &cfg)
		case name == ".difflintrc":
			cfg, err = parseLegacy(data)
		default:
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return Config{}, "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, path, nil
	}
	return Config{}, "", nil
}

// parseLegacy reads a .difflintrc. The original format is a JSON object
// mapping language names straight to extensions and linters; a file with a
// top-level "languages" key is read as a full config instead. YAML is a
// superset of JSON, so both decode with yaml.v3.
func parseLegacy(data []byte) (Config, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, err
	}
	var cfg Config
	if _, ok := probe["languages"]; ok {
		err := yaml.Unmarshal(data, &cfg)
		return cfg, err
	}
	var langs map[string]Language
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return Config{}, err
	}
	cfg.Languages = langs
	return cfg, nil
}

// Merge applies custom over base. Languages are replaced wholesale, linter
// definitions are merged by name, and scalar settings override when set.
func Merge(base, custom Config) Config {
	out := base
	if len(custom.Languages) > 0 {
		out.Languages = custom.Languages
	}
	if len(custom.Linters) > 0 {
		merged := make(map[string]Linter, len(base.Linters)+len(custom.Linters))
		for name, l := range base.Linters {
			merged[name] = l
		}
		for name, l := range custom.Linters {
			merged[name] = l
		}
		out.Linters = merged
	}
	if len(custom.Ignore) > 0 {
		out.Ignore = append(append([]string(nil), base.Ignore...), custom.Ignore...)
	}
	if custom.MultiFile != "" {
		out.MultiFile = custom.MultiFile
	}
	if custom.Collation != "" {
		out.Collation = custom.Collation
	}
	if custom.LogFile != "" {
		out.LogFile = custom.LogFile
	}
	if custom.Workers != 0 {
		out.Workers = custom.Workers
	}
	if custom.Fail {
		out.Fail = true
	}
	return out
}

// Validate checks that every language refers to a defined linter and every
// linter has a command.
func (c Config) Validate() error {
	for _, lang := range sortedKeys(c.Languages) {
		for _, name := range c.Languages[lang].Linters {
			if _, ok := c.Linters[name]; !ok {
				return fmt.Errorf("unknown linter %q for language %q", name, lang)
			}
		}
	}
	for _, name := range sortedKeys(c.Linters) {
		l := c.Linters[name]
		if len(l.Command) == 0 || l.Command[0] == "" {
			return fmt.Errorf("linter %q has no command", name)
		}
		if l.Format == "" {
			return fmt.Errorf("linter %q has no format", name)
		}
	}
	for _, p := range c.Ignore {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return nil
}

// LintersFor returns the linters configured for path's extension, in
// language then declaration order, without duplicates.
func (c Config) LintersFor(path string) []string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, lang := range sortedKeys(c.Languages) {
		l := c.Languages[lang]
		if !contains(l.Extensions, ext) {
			continue
		}
		for _, name := range l.Linters {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Ignored reports whether the repository-relative path matches an ignore pattern.
func (c Config) Ignored(path string) bool {
	path = filepath.ToSlash(path)
	for _, p := range c.Ignore {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// Expand returns the linter's command with the path placeholder substituted.
func (l Linter) Expand(path string) []string {
	args := make([]string, len(l.Command))
	for i, a := range l.Command {
		args[i] = strings.ReplaceAll(a, PathPlaceholder, path)
	}
	return args
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimPrefix(v, ".") == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
