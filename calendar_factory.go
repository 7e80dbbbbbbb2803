package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
)

// CalendarFactory creates the calendar provider named by the configuration.
type CalendarFactory struct {
	config     *Config
	db         *sql.DB
	ctx        context.Context
	secretPath string
	in         io.Reader
	out        io.Writer
}

// NewCalendarFactory creates a new calendar factory instance. secretPath is the
// client secret file given on the command line, if any.
func NewCalendarFactory(ctx context.Context, config *Config, db *sql.DB, secretPath string, in io.Reader, out io.Writer) *CalendarFactory {
	return &CalendarFactory{
		config:     config,
		db:         db,
		ctx:        ctx,
		secretPath: secretPath,
		in:         in,
		out:        out,
	}
}

// DefaultProvider creates the provider selected by the provider key of the config.
func (cf *CalendarFactory) DefaultProvider() (CalendarProvider, error) {
	return cf.CreateCalendarProvider(cf.config.Provider, cf.config.Account, cf.config.CalDAVServer)
}

// CreateCalendarProvider creates a specific calendar provider
func (cf *CalendarFactory) CreateCalendarProvider(providerType string, accountName string, serverName string) (CalendarProvider, error) {
	switch providerType {
	case "google":
		oauthConfig, err := loadOAuthConfig(cf.config, cf.db, cf.secretPath)
		if err != nil {
			return nil, err
		}
		client, err := NewAuthorizer(oauthConfig, cf.db, cf.in, cf.out).getClient(cf.ctx, accountName)
		if err != nil {
			return nil, fmt.Errorf("error authorizing account %s: %w", accountName, err)
		}
		return NewGoogleCalendarProvider(cf.ctx, client, cf.config.General)

	case "caldav":
		if serverName == "" {
			return nil, fmt.Errorf("no caldav_server configured for CalDAV provider")
		}

		serverConfig, ok := cf.config.CalDAVs[serverName]
		if !ok {
			return nil, fmt.Errorf("CalDAV server '%s' not found in configuration", serverName)
		}

		return NewCalDAVProvider(cf.ctx, serverConfig.ServerURL, serverConfig.Username, serverConfig.Password)

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// ValidateCalendarAccess checks if the provided calendar ID is accessible
func (cf *CalendarFactory) ValidateCalendarAccess(provider CalendarProvider, calendarID string) error {
	return provider.GetCalendar(calendarID)
}
