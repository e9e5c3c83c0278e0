package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baijiangliang/year2018/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Emails:       []string{"alice@example.com"},
		Year:         2018,
		Workers:      4,
		Limit:        10,
		Output:       "text",
		Color:        "yes",
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		setupMock   func(*MockGitClient)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid cache backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			expectError: true,
		},
		{
			name: "mysql without connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
			},
			expectError: true,
		},
		{
			name:        "year with start",
			mutate:      func(in *ConfigRawInput) { in.Start = "2018-01-01" },
			expectError: true,
		},
		{
			name:        "invalid timezone",
			mutate:      func(in *ConfigRawInput) { in.Timezone = "Mars/Olympus" },
			expectError: true,
		},
		{
			name: "negative threshold",
			mutate: func(in *ConfigRawInput) {
				v := -1
				in.Thresholds.MaxFiles = &v
			},
			expectError: true,
		},
		{
			name:   "email from git config",
			mutate: func(in *ConfigRawInput) { in.Emails = nil },
			setupMock: func(m *MockGitClient) {
				m.On("GetConfigEmail", mock.Anything, mock.Anything).Return("bob@example.com", nil)
			},
		},
		{
			name:   "no email anywhere",
			mutate: func(in *ConfigRawInput) { in.Emails = nil },
			setupMock: func(m *MockGitClient) {
				m.On("GetConfigEmail", mock.Anything, mock.Anything).Return("", nil)
			},
			expectError: true,
		},
		{
			name:   "git config lookup fails",
			mutate: func(in *ConfigRawInput) { in.Emails = []string{"  "} },
			setupMock: func(m *MockGitClient) {
				m.On("GetConfigEmail", mock.Anything, mock.Anything).Return("", errors.New("boom"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockGitClient{}
			if tt.setupMock != nil {
				tt.setupMock(client)
			}
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, client, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidate_Fields(t *testing.T) {
	input := validInput()
	input.Emails = []string{"alice@example.com alice@corp.com", ""}
	input.Timezone = "Asia/Shanghai"
	input.Repos = []string{" ./a ", "", "https://example.com/b.git"}
	input.Name = " Alice "
	input.Output = "JSON"
	maxFiles := 64
	input.Thresholds.MaxFiles = &maxFiles

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, &MockGitClient{}, input))

	assert.Equal(t, "Alice", cfg.UserName)
	assert.Equal(t, []string{"alice@example.com", "alice@corp.com"}, cfg.Emails)
	assert.True(t, cfg.Identities.Has("alice@corp.com"))
	assert.Equal(t, []string{"./a", "https://example.com/b.git"}, cfg.Repos)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, "Asia/Shanghai", cfg.Location.String())
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, cfg.Location), cfg.Begin)
	assert.Equal(t, time.Date(2019, 1, 1, 0, 0, 0, 0, cfg.Location), cfg.End)
	assert.Equal(t, 64, cfg.Thresholds.MaxFiles)
	assert.Equal(t, schema.DefaultThresholds().MaxInsertions, cfg.Thresholds.MaxInsertions)
	assert.NotEmpty(t, cfg.BaseDir)
	assert.NotEmpty(t, cfg.ScanDir)
}

func TestProcessTimeRange(t *testing.T) {
	now := time.Date(2019, time.January, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     ConfigRawInput
		wantBegin time.Time
		wantEnd   time.Time
		wantYear  int
		wantErr   bool
	}{
		{
			name:      "january defaults to previous year",
			input:     ConfigRawInput{Timezone: "UTC"},
			wantBegin: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			wantYear:  2018,
		},
		{
			name:      "explicit year",
			input:     ConfigRawInput{Timezone: "UTC", Year: 2016},
			wantBegin: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
			wantYear:  2016,
		},
		{
			name:      "start and end dates",
			input:     ConfigRawInput{Timezone: "UTC", Start: "2018-03-01", End: "2018-06-01"},
			wantBegin: time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end only spans a year",
			input:     ConfigRawInput{Timezone: "UTC", End: "2018-06-01T00:00:00Z"},
			wantBegin: time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "start only runs until now",
			input:     ConfigRawInput{Timezone: "UTC", Start: "2018-06-01"},
			wantBegin: time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:    "start after end",
			input:   ConfigRawInput{Timezone: "UTC", Start: "2018-06-01", End: "2018-03-01"},
			wantErr: true,
		},
		{
			name:    "garbage date",
			input:   ConfigRawInput{Timezone: "UTC", Start: "last tuesday"},
			wantErr: true,
		},
		{
			name:    "year before epoch",
			input:   ConfigRawInput{Timezone: "UTC", Year: 1969},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := processTimeRange(cfg, &tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantBegin.Equal(cfg.Begin), "begin %s", cfg.Begin)
			assert.True(t, tt.wantEnd.Equal(cfg.End), "end %s", cfg.End)
			assert.Equal(t, tt.wantYear, cfg.Year)
		})
	}
}

func TestRecentYear(t *testing.T) {
	assert.Equal(t, 2018, RecentYear(time.Date(2019, time.January, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2019, RecentYear(time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2018, RecentYear(time.Date(2018, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{schema.SQLiteBackend, "", false},
		{schema.NoneBackend, "", false},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/year2018", false},
		{schema.MySQLBackend, "user:pass@localhost/year2018", true},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{schema.PostgreSQLBackend, "host=localhost port=5432 dbname=year2018", false},
		{schema.PostgreSQLBackend, "host=localhost", true},
		{schema.PostgreSQLBackend, "", true},
	}
	for _, tt := range tests {
		err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
		if tt.wantErr {
			assert.Error(t, err, "%s %q", tt.backend, tt.conn)
		} else {
			assert.NoError(t, err, "%s %q", tt.backend, tt.conn)
		}
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Emails: []string{"a@x.com"}, Repos: []string{"r"}}
	cfg.Identities = schema.NewIdentitySet(cfg.Emails...)

	clone := cfg.Clone()
	clone.Emails[0] = "b@x.com"
	clone.Repos = append(clone.Repos, "s")

	assert.Equal(t, "a@x.com", cfg.Emails[0])
	assert.Len(t, cfg.Repos, 1)
	assert.True(t, clone.Identities.Has("a@x.com"))
}

func TestRevalidateWindow(t *testing.T) {
	cfg := &Config{Location: time.UTC}

	require.NoError(t, RevalidateWindow(cfg, 2017, "", ""))
	assert.Equal(t, 2017, cfg.Year)
	assert.Equal(t, time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Begin)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), cfg.End)

	require.NoError(t, RevalidateWindow(cfg, 0, "2018-03-01", "2018-04-01"))
	assert.Zero(t, cfg.Year)
	assert.Equal(t, time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), cfg.Begin)

	assert.Error(t, RevalidateWindow(cfg, 2018, "2018-03-01", ""))
	assert.Error(t, RevalidateWindow(cfg, 0, "2018-05-01", "2018-04-01"))
}

func TestRevalidateIdentities(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, RevalidateIdentities(cfg, []string{" bob@example.com ", ""}))
	assert.Equal(t, []string{"bob@example.com"}, cfg.Emails)
	assert.True(t, cfg.Identities.Has("bob@example.com"))

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, RevalidateIdentities(cfg, []string{" "}), &cfgErr)
	assert.Equal(t, []string{"bob@example.com"}, cfg.Emails, "failed call keeps the old emails")
}
