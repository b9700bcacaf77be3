package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/accountable/internal/cli"
	"github.com/julianstephens/accountable/internal/constants"
	"github.com/julianstephens/accountable/internal/storage"
	"github.com/julianstephens/accountable/internal/storage/postgres"
	"github.com/julianstephens/accountable/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			if absDbPath, err := filepath.Abs(dbPath); err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized accountable storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating activities...")
	activities, err := sourceStore.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities from source: %w", err)
	}
	for _, a := range activities {
		if err := ctx.Store.AddActivity(a.Hour, a.Text); err != nil {
			return fmt.Errorf("failed to add activity for %s: %w", a.Hour, err)
		}
	}
	fmt.Printf("    Migrated %d activities\n", len(activities))

	fmt.Println("  Migrating daily notes...")
	migrated := 0
	seen := make(map[string]bool)
	for _, a := range activities {
		date := a.Hour.Format(constants.DateFormat)
		if seen[date] {
			continue
		}
		seen[date] = true

		note, err := sourceStore.GetDailyNote(a.Hour)
		if err != nil {
			return fmt.Errorf("failed to get note for %s: %w", date, err)
		}
		if note == "" {
			continue
		}
		if err := ctx.Store.SaveDailyNote(a.Hour, note); err != nil {
			return fmt.Errorf("failed to save note for %s: %w", date, err)
		}
		migrated++
	}
	fmt.Printf("    Migrated %d daily notes\n", migrated)

	// Analysis results are a cache keyed by date range; they regenerate on
	// demand and are not migrated.

	return nil
}
