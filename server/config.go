package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/dao/inmem"
	"github.com/dekarrin/codex/server/dao/sqlite"
)

// DBType is the engine a Database persists with.
type DBType string

func (dbt DBType) String() string {
	return string(dbt)
}

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

const (
	MaxSecretSize = 64
	MinSecretSize = 32

	// DefaultUnauthDelayMillis is the delay used when a Config does not set
	// one.
	DefaultUnauthDelayMillis = 1000
)

var defaultTokenSecret = []byte("DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!")

// Database says where a server keeps its users and puzzles. Its text form is
// a connection string: "inmem", or "sqlite:" followed by a data directory.
type Database struct {
	Type DBType

	// DataDir is the directory SQLite databases are kept in. It is unused for
	// other engines.
	DataDir string
}

// ParseDBConnString parses a connection string of the form ENGINE[:PARAMS].
// The engine name is not case-sensitive.
func ParseDBConnString(s string) (Database, error) {
	engine, param, _ := strings.Cut(s, ":")
	param = strings.TrimSpace(param)
	db := Database{Type: DBType(strings.ToLower(strings.TrimSpace(engine)))}

	switch db.Type {
	case DatabaseInMemory:
		if param != "" {
			return Database{}, fmt.Errorf("inmem takes no parameters but got %q", param)
		}
	case DatabaseSQLite:
		if param == "" {
			return Database{}, fmt.Errorf("sqlite needs a data directory, as in \"sqlite:path/to/dir\"")
		}
		db.DataDir = param
	case DatabaseNone:
		return Database{}, fmt.Errorf("DB engine 'none' cannot be used; for no persistence use 'inmem'")
	default:
		return Database{}, fmt.Errorf("unknown DB engine %q; must be one of 'inmem' or 'sqlite'", strings.TrimSpace(engine))
	}

	return db, nil
}

// String gives the connection string for db.
func (db Database) String() string {
	if db.Type == DatabaseSQLite {
		return db.Type.String() + ":" + db.DataDir
	}
	return db.Type.String()
}

// Validate returns an error if db cannot be connected to.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("sqlite needs a data directory")
		}
		return nil
	default:
		return fmt.Errorf("%q is not a usable DB engine", db.Type.String())
	}
}

// Connect opens the store db describes, creating its data directory if
// needed.
func (db Database) Connect() (dao.Store, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}

	if db.Type == DatabaseInMemory {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(db.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.NewDatastore(db.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite: %w", err)
	}
	return store, nil
}

// Config holds everything needed to start a Server.
type Config struct {
	// Listen is the address to serve on, as ADDRESS:PORT or :PORT. New does
	// not use it; it is carried for whatever starts the server.
	Listen string

	// TokenSecret signs JWTs. It must be between MinSecretSize and
	// MaxSecretSize bytes.
	TokenSecret []byte

	DB Database

	// UnauthDelayMillis is how long to wait before answering with an
	// HTTP-401, HTTP-403, or HTTP-500, to slow down naive clients guessing at
	// credentials. Zero means DefaultUnauthDelayMillis and a negative number
	// means no delay.
	UnauthDelayMillis int

	// PresetsFile is a CXP file of the difficulties puzzles can be created
	// with. If empty, the built-in difficulties are used.
	PresetsFile string
}

// configFile is the layout of a server config file.
type configFile struct {
	Listen        string `toml:"listen"`
	Secret        string `toml:"secret"`
	DB            string `toml:"db"`
	UnauthDelayMS int    `toml:"unauth_delay_ms"`
	Presets       string `toml:"presets"`
}

// LoadConfig reads a TOML server config file such as:
//
//	listen = ":8080"
//	secret = "some secret of 32 to 64 bytes..."
//	db = "sqlite:/var/lib/codex"
//	unauth_delay_ms = 500
//	presets = "difficulties.cxp"
//
// Every key is optional. A relative presets path is taken relative to the
// config file. An unknown key is an error. The returned Config has no
// defaults filled in.
func LoadConfig(path string) (Config, error) {
	var f configFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Config{}, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undec[0].String())
	}

	cfg := Config{
		Listen:            f.Listen,
		UnauthDelayMillis: f.UnauthDelayMS,
		PresetsFile:       f.Presets,
	}
	if f.Secret != "" {
		cfg.TokenSecret = []byte(f.Secret)
	}
	if f.DB != "" {
		cfg.DB, err = ParseDBConnString(f.DB)
		if err != nil {
			return Config{}, fmt.Errorf("db: %w", err)
		}
	}
	if md.IsDefined("unauth_delay_ms") && f.UnauthDelayMS == 0 {
		// an explicit 0 turns the delay off rather than asking for the
		// default
		cfg.UnauthDelayMillis = -1
	}
	if cfg.PresetsFile != "" && !filepath.IsAbs(cfg.PresetsFile) {
		cfg.PresetsFile = filepath.Join(filepath.Dir(path), cfg.PresetsFile)
	}

	return cfg, nil
}

// UnauthDelay returns UnauthDelayMillis as a time.Duration. It is zero if
// UnauthDelayMillis is not positive.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		return 0
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// FillDefaults returns a copy of cfg with unset values given their defaults.
// The default DB is in-memory.
func (cfg Config) FillDefaults() Config {
	if cfg.TokenSecret == nil {
		cfg.TokenSecret = defaultTokenSecret
	}
	if cfg.DB.Type == "" || cfg.DB.Type == DatabaseNone {
		cfg.DB = Database{Type: DatabaseInMemory}
	}
	if cfg.UnauthDelayMillis == 0 {
		cfg.UnauthDelayMillis = DefaultUnauthDelayMillis
	}
	return cfg
}

// Validate returns an error if cfg cannot start a Server. Unset values are
// invalid, so call FillDefaults first to use the defaults.
func (cfg Config) Validate() error {
	if n := len(cfg.TokenSecret); n < MinSecretSize || n > MaxSecretSize {
		return fmt.Errorf("token secret: must be %d to %d bytes, but is %d", MinSecretSize, MaxSecretSize, n)
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	return nil
}
