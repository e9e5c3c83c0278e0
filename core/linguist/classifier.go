package linguist

import "strings"

// Classifier resolves a numstat path to a language tag.
// The zero value is not usable; build one with New.
type Classifier struct {
	extensions map[string]string
	common     map[string]struct{}
	ignore     map[string]map[string]struct{}
}

// New builds a Classifier from tables.
func New(tables Tables) *Classifier {
	c := &Classifier{
		extensions: make(map[string]string, len(tables.Extensions)),
		common:     map[string]struct{}{},
		ignore:     make(map[string]map[string]struct{}, len(tables.IgnoreDirs)),
	}
	for ext, lang := range tables.Extensions {
		c.extensions[strings.ToLower(ext)] = lang
	}
	for lang, dirs := range tables.IgnoreDirs {
		set := make(map[string]struct{}, len(dirs))
		for _, d := range dirs {
			set[d] = struct{}{}
		}
		if lang == CommonKey {
			c.common = set
			continue
		}
		c.ignore[lang] = set
	}
	return c
}

// Default returns a Classifier over DefaultTables.
func Default() *Classifier {
	return New(DefaultTables())
}

// Classify returns the language of path, or "" when the file should not be
// attributed to any language.
func (c *Classifier) Classify(path string) string {
	firstDir, _, _ := strings.Cut(path, "/")
	firstDir = strings.TrimSpace(firstDir)
	if _, ok := c.common[firstDir]; ok || !strings.Contains(path, ".") {
		return ""
	}

	ext := path[strings.LastIndex(path, ".")+1:]
	lang := c.extensions[strings.ToLower(strings.TrimSpace(ext))]
	if lang == "" {
		return ""
	}
	if _, ok := c.ignore[lang][firstDir]; ok {
		return ""
	}
	return lang
}

