package linguist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := Default()
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "Go"},
		{"src/a.py", "Python"},
		{"web/App.VUE", "JavaScript"},
		{"include/x.h", "C++"},
		{"lib/mod.rs", "Rust"},
		{"scripts/deploy.sh ", "Shell"},
		{"Makefile", ""},
		{"docs/README", ""},
		{"notes.txt", ""},
		{"vendor/x/y.go", ""},
		{"build/gen.java", ""},
		{"thrift_gen/svc.go", ""},
		{"clients/api.go", ""},
		{"clients/api.py", "Python"},
		{"lib/util.py", ""},
		{"env/site.py", ""},
		{"lib/util.go", "Go"},
		{"pkg/vendor/x.go", "Go"},
		{"", ""},
		{".", ""},
		{"a.b/c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.path))
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := Default()
	for _, p := range []string{"a/b.go", "vendor/c.go", "x.PY", "noext"} {
		assert.Equal(t, c.Classify(p), c.Classify(p), p)
	}
}

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()
	assert.Len(t, tables.Extensions, 23)
	assert.ElementsMatch(t, []string{"vendor", "build"}, tables.IgnoreDirs[CommonKey])
}

func TestLoadTables(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		tables, err := LoadTables("")
		require.NoError(t, err)
		assert.Equal(t, DefaultTables(), tables)
	})

	t.Run("yaml overrides merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "languages.yaml")
		body := `extensions:
  KT: Kotlin
  .proto: Protobuf
  sh: ""
ignore_dirs:
  common: [vendor, third_party]
  Kotlin: [generated]
`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		tables, err := LoadTables(path)
		require.NoError(t, err)
		c := New(tables)
		assert.Equal(t, "Kotlin", c.Classify("app/Main.kt"))
		assert.Equal(t, "Protobuf", c.Classify("api/v1.proto"))
		assert.Equal(t, "", c.Classify("generated/Main.kt"))
		assert.Equal(t, "", c.Classify("third_party/x.go"))
		assert.Equal(t, "Go", c.Classify("build/x.go"), "common list replaced")
		assert.Equal(t, "", c.Classify("run.sh"), "blank language removes the extension")
		assert.Equal(t, "Go", c.Classify("main.go"))
	})

	t.Run("toml and json", func(t *testing.T) {
		dir := t.TempDir()
		tomlPath := filepath.Join(dir, "languages.toml")
		require.NoError(t, os.WriteFile(tomlPath, []byte("[extensions]\nzig = \"Zig\"\n"), 0o644))
		jsonPath := filepath.Join(dir, "languages.json")
		require.NoError(t, os.WriteFile(jsonPath, []byte(`{"extensions": {"dart": "Dart"}}`), 0o644))

		tables, err := LoadTables(tomlPath)
		require.NoError(t, err)
		assert.Equal(t, "Zig", tables.Extensions["zig"])

		tables, err = LoadTables(jsonPath)
		require.NoError(t, err)
		assert.Equal(t, "Dart", tables.Extensions["dart"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestTablesFingerprint(t *testing.T) {
	base := DefaultTables().Fingerprint()
	assert.Len(t, base, 64)
	assert.Equal(t, base, DefaultTables().Fingerprint())

	changed := DefaultTables()
	changed.Extensions["kt"] = "Kotlin"
	assert.NotEqual(t, base, changed.Fingerprint())

	changed = DefaultTables()
	changed.IgnoreDirs[CommonKey] = append(changed.IgnoreDirs[CommonKey], "third_party")
	assert.NotEqual(t, base, changed.Fingerprint())
}
