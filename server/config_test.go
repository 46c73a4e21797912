package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{name: "inmem", input: "inmem", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem upper", input: "INMEM", expect: Database{Type: DatabaseInMemory}},
		{name: "sqlite", input: "sqlite:/var/codex", expect: Database{Type: DatabaseSQLite, DataDir: "/var/codex"}},
		{name: "sqlite without dir", input: "sqlite", expectErr: true},
		{name: "inmem with params", input: "inmem:foo", expectErr: true},
		{name: "none", input: "none", expectErr: true},
		{name: "unknown", input: "postgres:localhost", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseDBConnString(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)

			// the connection string round trips
			again, err := ParseDBConnString(actual.String())
			assert.NoError(err)
			assert.Equal(actual, again)
		})
	}
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{name: "defaults", cfg: Config{}.FillDefaults()},
		{name: "short secret", cfg: Config{TokenSecret: []byte("short"), DB: Database{Type: DatabaseInMemory}}, expectErr: true},
		{name: "no DB", cfg: Config{TokenSecret: []byte(testSecret)}, expectErr: true},
		{name: "sqlite without dir", cfg: Config{TokenSecret: []byte(testSecret), DB: Database{Type: DatabaseSQLite}}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.cfg.Validate()
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_LoadConfig(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		expect    Config
		expectErr bool
	}{
		{
			name:   "empty file",
			expect: Config{},
		},
		{
			name: "all keys",
			content: `listen = ":6001"
secret = "0123456789abcdef0123456789abcdef"
db = "sqlite:/var/codex"
unauth_delay_ms = 250
presets = "/etc/codex/presets.cxp"
`,
			expect: Config{
				Listen:            ":6001",
				TokenSecret:       []byte("0123456789abcdef0123456789abcdef"),
				DB:                Database{Type: DatabaseSQLite, DataDir: "/var/codex"},
				UnauthDelayMillis: 250,
				PresetsFile:       "/etc/codex/presets.cxp",
			},
		},
		{
			name:    "explicit zero delay disables it",
			content: "unauth_delay_ms = 0\n",
			expect:  Config{UnauthDelayMillis: -1},
		},
		{
			name:    "relative presets path",
			content: `presets = "presets.cxp"`,
			expect:  Config{PresetsFile: "presets.cxp"},
		},
		{
			name:      "bad db",
			content:   `db = "postgres:localhost"`,
			expectErr: true,
		},
		{
			name:      "unknown key",
			content:   `port = 8080`,
			expectErr: true,
		},
		{
			name:      "not TOML",
			content:   `listen = `,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			dir := t.TempDir()
			path := filepath.Join(dir, "codex.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			actual, err := LoadConfig(path)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			expect := tc.expect
			if expect.PresetsFile != "" && !filepath.IsAbs(expect.PresetsFile) {
				expect.PresetsFile = filepath.Join(dir, expect.PresetsFile)
			}
			assert.Equal(expect, actual)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{UnauthDelayMillis: -1}.FillDefaults()

	assert.Equal(Database{Type: DatabaseInMemory}, cfg.DB)
	assert.Equal(-1, cfg.UnauthDelayMillis)
	assert.Zero(cfg.UnauthDelay())
	assert.NoError(cfg.Validate())

	cfg = Config{}.FillDefaults()
	assert.Equal(DefaultUnauthDelayMillis, cfg.UnauthDelayMillis)
}
