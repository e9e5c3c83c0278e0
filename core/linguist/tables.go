// Package linguist maps changed file paths to language tags.
package linguist

import (
	"crypto/sha256"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// CommonKey is the ignore_dirs entry that applies to every language.
const CommonKey = "common"

// Tables is the extension and ignore-directory configuration used by a Classifier.
type Tables struct {
	// Extensions maps a lower-case extension without the dot to a language tag.
	Extensions map[string]string `koanf:"extensions"`

	// IgnoreDirs maps a language tag, or CommonKey, to top-level directory names
	// whose files are never attributed to that language.
	IgnoreDirs map[string][]string `koanf:"ignore_dirs"`
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Extensions: map[string]string{
			"py":    "Python",
			"go":    "Go",
			"rs":    "Rust",
			"c":     "C",
			"h":     "C++",
			"cpp":   "C++",
			"cc":    "C++",
			"hpp":   "C++",
			"java":  "Java",
			"js":    "JavaScript",
			"vue":   "JavaScript",
			"ts":    "TypeScript",
			"css":   "CSS",
			"less":  "CSS",
			"html":  "HTML",
			"cs":    "C#",
			"php":   "PHP",
			"r":     "R",
			"rb":    "Ruby",
			"m":     "Objective-C",
			"swift": "Swift",
			"scala": "Scala",
			"sh":    "Shell",
		},
		IgnoreDirs: map[string][]string{
			CommonKey: {"vendor", "build"},
			"Go":      {"thrift_gen", "clients"},
			"Python":  {"develop-eggs", "dist", "eggs", "lib", "lib64", "wheels", "env"},
		},
	}
}

// LoadTables reads overrides from a TOML, YAML or JSON file and merges them
// over the defaults. Extension keys are normalized to lower case.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	// Dotted extension keys such as "d.ts" stay whole.
	k := koanf.New("::")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return tables, fmt.Errorf("failed to load language tables from %s: %w", path, err)
	}
	var overrides Tables
	if err := k.Unmarshal("", &overrides); err != nil {
		return tables, fmt.Errorf("failed to decode language tables from %s: %w", path, err)
	}

	for ext, lang := range overrides.Extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if lang == "" {
			delete(tables.Extensions, ext)
			continue
		}
		tables.Extensions[ext] = lang
	}
	maps.Copy(tables.IgnoreDirs, overrides.IgnoreDirs)
	return tables, nil
}

// Fingerprint hashes the table contents in a stable order.
func (t Tables) Fingerprint() string {
	h := sha256.New()
	for _, ext := range slices.Sorted(maps.Keys(t.Extensions)) {
		fmt.Fprintf(h, "ext:%s=%s\n", ext, t.Extensions[ext])
	}
	for _, lang := range slices.Sorted(maps.Keys(t.IgnoreDirs)) {
		fmt.Fprintf(h, "ignore:%s=%s\n", lang, strings.Join(t.IgnoreDirs[lang], ","))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
