package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/resume-studio/internal/cache"
	"github.com/jonathan/resume-studio/internal/composer"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

// loadSettings layers flags over the config file, the environment and the
// built-in defaults.
func loadSettings() (config.Config, error) {
	settings := config.Config{
		UserID:      userIDFlag,
		CachePath:   cachePath,
		DatabaseURL: databaseURL,
		Verbose:     verbose,
	}
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		settings = settings.MergeWithDefaults(*fileCfg)
		settings.Verbose = settings.Verbose || fileCfg.Verbose
	}
	settings = settings.MergeWithDefaults(config.FromEnv())
	settings = settings.MergeWithDefaults(config.Defaults())

	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

// session is the storage stack of one CLI invocation.
type session struct {
	settings config.Config
	store    *store.Store
	cache    *cache.Bolt
	db       *db.DB
}

// openSession opens the local cache and, when configured, the remote
// database. Neither failure is fatal: the store degrades to memory only or
// skips replication.
func openSession(ctx context.Context, settings config.Config) (*session, error) {
	userID, err := settings.ParsedUserID()
	if err != nil {
		return nil, err
	}
	s := &session{settings: settings}

	var local store.LocalCache
	if settings.CachePath != "" {
		bolt, err := cache.OpenBolt(settings.CachePath)
		if err != nil {
			log.Printf("[CLI] local cache unavailable: %v", err)
		} else {
			s.cache = bolt
			local = bolt
		}
	}

	var remote store.RemoteStore
	if settings.DatabaseURL != "" {
		database, err := db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			log.Printf("[CLI] remote store unavailable: %v", err)
		} else if err := database.Migrate(ctx); err != nil {
			log.Printf("[CLI] remote store migration failed: %v", err)
			database.Close()
		} else {
			s.db = database
			remote = database
		}
	}

	if settings.Verbose {
		log.Printf("[CLI] user=%s cache=%s remote=%t", userID, settings.CachePath, remote != nil)
	}
	s.store = store.New(userID, local, remote, store.Options{})
	return s, nil
}

// composer mounts the composer of a template, falling back to the
// configured default variant when name is empty.
func (s *session) composer(ctx context.Context, name string) (*composer.Composer, error) {
	if name == "" {
		name = s.settings.Template
	}
	v, err := registry.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	c, err := composer.New(v, s.store)
	if err != nil {
		return nil, err
	}
	if _, err := c.Mount(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Close drains replication and releases storage.
func (s *session) Close(ctx context.Context) error {
	var errs []error
	if err := s.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to drain replication: %w", err))
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}
	return errors.Join(errs...)
}

// withSession runs fn with an open session and always closes it.
func withSession(fn func(ctx context.Context, s *session) error) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	ctx := context.Background()
	s, err := openSession(ctx, settings)
	if err != nil {
		return err
	}
	runErr := fn(ctx, s)
	closeErr := s.Close(ctx)
	return errors.Join(runErr, closeErr)
}

// readResume loads and validates a resume JSON file.
func readResume(path string) (*types.ResumeData, error) {
	if path == "" {
		return nil, fmt.Errorf("--resume is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	if err := schemas.ValidateResumeData(data); err != nil {
		return nil, err
	}
	var resume types.ResumeData
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return resume.Normalize(), nil
}

// printLayout shows the composed layout on stderr in verbose mode.
func printLayout(ctx context.Context, cmd *cobra.Command, s *session, c *composer.Composer, resume *types.ResumeData) error {
	if !s.settings.Verbose {
		return nil
	}
	view, err := c.Compose(ctx, resume)
	if err != nil {
		return err
	}
	p := observability.NewPrinter(cmd.ErrOrStderr())
	p.PrintLayout(view)
	p.PrintSkillDistribution(resume.Skills)
	return nil
}

func writeOutput(path string, data []byte, stdout func([]byte) error) error {
	if path == "" {
		return stdout(data)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
