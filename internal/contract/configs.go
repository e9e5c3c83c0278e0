package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/baijiangliang/year2018/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ThresholdsRawInput holds smoothing threshold overrides from the YAML config file.
type ThresholdsRawInput struct {
	MaxFiles         *int `mapstructure:"max_files"`
	MaxInsertions    *int `mapstructure:"max_insertions"`
	MaxDeletions     *int `mapstructure:"max_deletions"`
	AvgFiles         *int `mapstructure:"avg_files"`
	AvgInsertions    *int `mapstructure:"avg_insertions"`
	AvgDeletions     *int `mapstructure:"avg_deletions"`
	CommonFiles      *int `mapstructure:"common_files"`
	CommonInsertions *int `mapstructure:"common_insertions"`
	CommonDeletions  *int `mapstructure:"common_deletions"`
}

// Config holds the runtime configuration for one run.
// This struct remains the "final, validated" config.
type Config struct {
	UserName   string
	Emails     []string
	Identities schema.IdentitySet

	Repos   []string // local paths or remote URLs, in input order
	ScanDir string   // searched for repositories when Repos is empty
	BaseDir string   // relative repo paths and clones resolve against this

	Year     int // zero when an explicit start/end was given
	Begin    time.Time
	End      time.Time
	Location *time.Location

	Encrypt       bool
	Workers       int
	Limit         int
	Thresholds    schema.Thresholds
	LanguagesFile string

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Name           string   `mapstructure:"name"`
	Emails         []string `mapstructure:"email"`
	Repos          []string `mapstructure:"repo"`
	ScanDir        string   `mapstructure:"scan-dir"`
	BaseDir        string   `mapstructure:"base-dir"`
	Year           int      `mapstructure:"year"`
	Start          string   `mapstructure:"start"`
	End            string   `mapstructure:"end"`
	Timezone       string   `mapstructure:"timezone"`
	Encrypt        bool     `mapstructure:"encrypt"`
	Workers        int      `mapstructure:"workers"`
	Limit          int      `mapstructure:"limit"`
	LanguagesFile  string   `mapstructure:"languages-file"`
	Output         string   `mapstructure:"output"`
	OutputFile     string   `mapstructure:"output-file"`
	Color          string   `mapstructure:"color"`
	CacheBackend   string   `mapstructure:"cache-backend"`
	CacheDBConnect string   `mapstructure:"cache-db-connect"`

	// --- Smoothing thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Emails = slices.Clone(c.Emails)
	clone.Repos = slices.Clone(c.Repos)
	if c.Identities != nil {
		clone.Identities = schema.NewIdentitySet(c.Emails...)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processLocations(cfg, input); err != nil {
		return err
	}
	return processIdentities(ctx, cfg, client, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// RevalidateWindow replaces the time window of a validated config. It is
// used when an MCP tool call overrides the year or the dates.
func RevalidateWindow(cfg *Config, year int, start, end string) error {
	input := &ConfigRawInput{Year: year, Start: start, End: end}
	if cfg.Location != nil {
		input.Timezone = cfg.Location.String()
	}
	return processTimeRange(cfg, input, time.Now())
}

// RevalidateIdentities replaces the tracked emails of a validated config.
func RevalidateIdentities(cfg *Config, emails []string) error {
	var clean []string
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			clean = append(clean, e)
		}
	}
	if len(clean) == 0 {
		return &ConfigurationError{Msg: "at least one email is required"}
	}
	cfg.Emails = clean
	cfg.Identities = schema.NewIdentitySet(clean...)
	return nil
}

// RecentYear returns the calendar year a report should cover by default:
// the current year, or the previous one while January is still young.
func RecentYear(now time.Time) int {
	if now.Month() == time.January {
		return now.Year() - 1
	}
	return now.Year()
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.UserName = strings.TrimSpace(input.Name)
	cfg.Encrypt = input.Encrypt
	cfg.OutputFile = input.OutputFile
	cfg.LanguagesFile = input.LanguagesFile

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, dot", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// processTimeRange resolves the time zone and the [Begin, End) window.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.Location = time.Local
	if tz := strings.TrimSpace(input.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", tz, err)
		}
		cfg.Location = loc
	}

	explicit := input.Start != "" || input.End != ""
	if input.Year != 0 && explicit {
		return fmt.Errorf("--year cannot be combined with --start or --end")
	}

	if !explicit {
		cfg.Year = input.Year
		if cfg.Year == 0 {
			cfg.Year = RecentYear(now.In(cfg.Location))
		}
		if cfg.Year < 1970 {
			return fmt.Errorf("year must be 1970 or later (received %d)", cfg.Year)
		}
		cfg.Begin = time.Date(cfg.Year, time.January, 1, 0, 0, 0, 0, cfg.Location)
		cfg.End = cfg.Begin.AddDate(1, 0, 0)
		return nil
	}

	cfg.Year = 0
	cfg.End = now.In(cfg.Location)
	if input.End != "" {
		t, err := parseDate(input.End, cfg.Location)
		if err != nil {
			return fmt.Errorf("invalid end date '%s': %w", input.End, err)
		}
		cfg.End = t
	}
	cfg.Begin = cfg.End.AddDate(-1, 0, 0)
	if input.Start != "" {
		t, err := parseDate(input.Start, cfg.Location)
		if err != nil {
			return fmt.Errorf("invalid start date '%s': %w", input.Start, err)
		}
		cfg.Begin = t
	}
	if !cfg.Begin.Before(cfg.End) {
		return fmt.Errorf("start time (%s) must be before end time (%s)", cfg.Begin.Format(DateTimeFormat), cfg.End.Format(DateTimeFormat))
	}
	return nil
}

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(schema.DayFormat, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339")
	}
	return t.In(loc), nil
}

// processThresholds overlays config-file overrides on the default thresholds.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	th := schema.DefaultThresholds()
	raw := input.Thresholds
	overrides := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"max_files", raw.MaxFiles, &th.MaxFiles},
		{"max_insertions", raw.MaxInsertions, &th.MaxInsertions},
		{"max_deletions", raw.MaxDeletions, &th.MaxDeletions},
		{"avg_files", raw.AvgFiles, &th.AvgFiles},
		{"avg_insertions", raw.AvgInsertions, &th.AvgInsertions},
		{"avg_deletions", raw.AvgDeletions, &th.AvgDeletions},
		{"common_files", raw.CommonFiles, &th.CommonFiles},
		{"common_insertions", raw.CommonInsertions, &th.CommonInsertions},
		{"common_deletions", raw.CommonDeletions, &th.CommonDeletions},
	}
	for _, o := range overrides {
		if o.src == nil {
			continue
		}
		if *o.src <= 0 {
			return fmt.Errorf("threshold %s must be greater than 0 (received %d)", o.name, *o.src)
		}
		*o.dst = *o.src
	}
	cfg.Thresholds = th
	return nil
}

// processLocations resolves the base directory, scan directory and repo inputs.
func processLocations(cfg *Config, input *ConfigRawInput) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg.BaseDir = wd
	if input.BaseDir != "" {
		if cfg.BaseDir, err = filepath.Abs(input.BaseDir); err != nil {
			return err
		}
	}
	cfg.ScanDir = filepath.Dir(cfg.BaseDir)
	if input.ScanDir != "" {
		if cfg.ScanDir, err = filepath.Abs(input.ScanDir); err != nil {
			return err
		}
	}
	cfg.Repos = cfg.Repos[:0]
	for _, r := range input.Repos {
		if r = strings.TrimSpace(r); r != "" {
			cfg.Repos = append(cfg.Repos, r)
		}
	}
	return nil
}

// processIdentities resolves the tracked emails, falling back to git config.
func processIdentities(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	cfg.Emails = cfg.Emails[:0]
	for _, e := range input.Emails {
		for _, part := range strings.Fields(e) {
			cfg.Emails = append(cfg.Emails, part)
		}
	}
	if len(cfg.Emails) == 0 {
		email, err := client.GetConfigEmail(ctx, cfg.BaseDir)
		if err != nil {
			return &ConfigurationError{Msg: fmt.Sprintf("no --email given and git config lookup failed: %v", err)}
		}
		if email == "" {
			return &ConfigurationError{Msg: "no --email given and git config user.email is unset"}
		}
		cfg.Emails = append(cfg.Emails, email)
	}
	cfg.Identities = schema.NewIdentitySet(cfg.Emails...)
	return nil
}
