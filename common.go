package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"
)

const (
	configFileName = "quickevent.toml"
	dbFileName     = "quickevent.db"
)

type Config struct {
	ClientID         string `toml:"client_id"`
	ClientSecret     string `toml:"client_secret"`
	ClientSecretFile string `toml:"client_secret_file"`
	Account          string `toml:"account"`
	Provider         string `toml:"provider"`
	CalendarID       string `toml:"calendar_id"`
	CalDAVServer     string `toml:"caldav_server"`

	General GeneralConfig           `toml:"general"`
	CalDAVs map[string]CalDAVConfig `toml:"caldavs"`

	// configDir is where the config file was found; the database lives next to it.
	configDir string
}

type GeneralConfig struct {
	VerbosityLevel   int    `toml:"verbosity_level"`
	Timezone         string `toml:"timezone"`
	DisableReminders bool   `toml:"disable_reminders"`
	EventVisibility  string `toml:"event_visibility"`
}

type CalDAVConfig struct {
	Name      string `toml:"name"`
	ServerURL string `toml:"server_url"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

const defaultVerbosity = 3

var verbosityLevel = defaultVerbosity

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "quickevent")
}

// configCandidates lists where the config file is looked up, in order.
func configCandidates() []string {
	candidates := []string{"." + configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "."+configFileName))
	}
	return append(candidates, filepath.Join(defaultConfigDir(), configFileName))
}

// loadConfig reads the first config file found. A missing config is not an error:
// the client secret may come from the command line instead.
func loadConfig() (*Config, error) {
	for _, path := range configCandidates() {
		config, err := readConfig(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return config, err
	}
	config := &Config{configDir: defaultConfigDir()}
	config.General.VerbosityLevel = defaultVerbosity
	config.normalize()
	return config, nil
}

func readConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	md, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", filename, err)
	}
	if !md.IsDefined("general", "verbosity_level") {
		config.General.VerbosityLevel = defaultVerbosity
	}
	config.configDir = filepath.Dir(filename)
	config.normalize()

	return &config, nil
}

func (c *Config) normalize() {
	if c.Account == "" {
		c.Account = "default"
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = "google"
	}
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
	if c.configDir == "" {
		c.configDir = defaultConfigDir()
	}
	if c.General.VerbosityLevel < 0 {
		c.General.VerbosityLevel = 0
	}
	if c.CalDAVs == nil {
		c.CalDAVs = map[string]CalDAVConfig{}
	}
	verbosityLevel = c.General.VerbosityLevel
}

// dbPath is the sqlite file beside the config.
func (c *Config) dbPath() string {
	return filepath.Join(c.configDir, dbFileName)
}

func openDB(filename string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, err
	}
	if err := dbInit(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// eventZone picks the IANA zone attached to created events: the configured one,
// then $TZ, then the zone /etc/localtime points at.
func eventZone(config *Config) (string, error) {
	zone := config.General.Timezone
	if zone == "" {
		zone = os.Getenv("TZ")
	}
	if zone == "" {
		if target, err := os.Readlink("/etc/localtime"); err == nil {
			if _, name, ok := strings.Cut(target, "zoneinfo/"); ok {
				zone = name
			}
		}
	}
	if zone == "" {
		zone = "UTC"
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", zone, err)
	}
	return zone, nil
}

func printVerbosely(w io.Writer, verbosity int, format string, a ...interface{}) {
	// 0 - no output, other than critical errors
	// 1 - run summary only
	// 2 - events created
	// 3 - duplicates skipped and progress
	// 4 - everything
	if verbosity <= verbosityLevel {
		fmt.Fprintf(w, format, a...)
	}
}
