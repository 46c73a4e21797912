/*
Cxserver starts a codex puzzle server and begins listening for new connections.

Usage:

	cxserver [flags]
	cxserver [flags] -l [[ADDRESS]:PORT]

Once started, the codex server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This can
be changed with the --listen/-l flag (or config via environment var). The flag
argument must be either a full address with port, such as "192.168.0.2:6001", or
just the port preceeded by a colon, such as ":6001".

If a JWT token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but must be given via
either CLI flags or environment variable if running in production.

If the database has no user named "admin", one is created with the Admin role
and the password given by environment variable CODEX_ADMIN_PASSWORD, or
"password" if that is not set.

Settings may also be given in a TOML config file with --config/-c. Flags
take priority over environment variables, which take priority over the config
file.

The flags are:

	-v, --version
		Give the current version of the codex server and then exit.

	-c, --config FILE
		Read settings from the given TOML file. It may set the keys listen,
		secret, db, unauth_delay_ms, and presets.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		CODEX_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable CODEX_TOKEN_SECRET. If no secret is specified or an empty
		secret is given, a random secret will be automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable CODEX_DATABASE. If neither is set,
		an in-memory database is used.

	-p, --presets FILE
		Load the difficulties puzzles can be created with from the given CXP
		file instead of using the built-in ones.
*/
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/codex/internal/version"
	"github.com/dekarrin/codex/server"
	"github.com/dekarrin/codex/server/dao"
	"github.com/dekarrin/codex/server/serr"
)

const (
	EnvListen        = "CODEX_LISTEN_ADDRESS"
	EnvSecret        = "CODEX_TOKEN_SECRET"
	EnvDB            = "CODEX_DATABASE"
	EnvAdminPassword = "CODEX_ADMIN_PASSWORD"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of codex server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Read settings from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
	flagPresets = pflag.StringP("presets", "p", "", "Load difficulties from the given CXP file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (codex v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	var cfg server.Config
	if *flagConfig != "" {
		var err error
		cfg, err = server.LoadConfig(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config file: %s\n", err)
			os.Exit(1)
		}
	}
	if *flagPresets != "" {
		cfg.PresetsFile = *flagPresets
	}

	addr, port, err := listenAddress(cfg.Listen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
		os.Exit(1)
	}

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		cfg.DB, err = server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err)
			os.Exit(1)
		}
	}

	cfg.TokenSecret, err = tokenSecret(string(cfg.TokenSecret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
		os.Exit(1)
	}

	cfg = cfg.FillDefaults()
	log.Printf("DEBUG Using DB %s", cfg.DB)

	cxs, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer cxs.Close()
	log.Printf("DEBUG Server initialized")

	// make sure there is someone we can log in as.
	adminPass := os.Getenv(EnvAdminPassword)
	if adminPass == "" {
		adminPass = "password"
	}
	_, err = cxs.Service().CreateUser(context.Background(), "admin", adminPass, "", dao.Admin)
	if err != nil && !errors.Is(err, serr.ErrAlreadyExists) {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if err == nil {
		if os.Getenv(EnvAdminPassword) == "" {
			log.Printf("WARN  Added initial admin user with password 'password'; set %s to change it", EnvAdminPassword)
		} else {
			log.Printf("INFO  Added initial admin user")
		}
	}

	log.Printf("INFO  Starting codex server %s...", version.ServerCurrent)
	err = cxs.ServeForever(addr, port)
	log.Printf("FATAL %s", err)
	os.Exit(3)
}

func listenAddress(fromFile string) (addr string, port int, err error) {
	listenAddr := fromFile
	if env := os.Getenv(EnvListen); env != "" {
		listenAddr = env
	}
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		return "", 0, nil
	}

	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format")
	}

	port, err = strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}

	return bindParts[0], port, nil
}

func tokenSecret(fromFile string) ([]byte, error) {
	tokSecStr := fromFile
	if env := os.Getenv(EnvSecret); env != "" {
		tokSecStr = env
	}
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}

	if tokSecStr == "" {
		// use all 64 possible bytes if doing a generated secret
		tokSecret := make([]byte, server.MaxSecretSize)
		if _, err := rand.Read(tokSecret); err != nil {
			return nil, fmt.Errorf("could not generate token secret: %w", err)
		}

		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return tokSecret, nil
	}

	tokSecret := []byte(tokSecStr)
	for len(tokSecret) < server.MinSecretSize {
		tokSecret = append(tokSecret, tokSecret...)
	}

	if len(tokSecret) > server.MaxSecretSize {
		// keys would be chopped at 64, so rather than the user thinking
		// they have more security by giving a longer key, refuse to start.
		return nil, fmt.Errorf("token secret is %d bytes, but it must be <= %d bytes", len(tokSecret), server.MaxSecretSize)
	}

	return tokSecret, nil
}
