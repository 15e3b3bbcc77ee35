// Package git provides Git repository utilities for tinychange: discovering
// the change author from git configuration and locating the repository root.
// It uses the go-git library, so no git binary is required.
package git

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// AuthorEnv is the environment variable consulted between the author and
// user settings of the git configuration.
const AuthorEnv = "GIT_AUTHOR_NAME"

// AuthorSource names where an author was found.
type AuthorSource string

const (
	SourceAuthorConfig AuthorSource = "git config author.name"
	SourceEnv          AuthorSource = "environment " + AuthorEnv
	SourceUserConfig   AuthorSource = "git config user.name"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// RepositoryRoot returns the absolute path to the root of the repository
// containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// FindAuthor returns the name to credit for a change made in dir.
// Lookup order: author.name from git config, then GIT_AUTHOR_NAME, then
// user.name from git config. Repository-local settings override global
// ones; outside a repository only the global configuration is read.
func FindAuthor(dir string) (string, AuthorSource, bool) {
	cfg := loadConfig(dir)

	if cfg != nil {
		if name := strings.TrimSpace(cfg.Author.Name); name != "" {
			logDebug("[git] FindAuthor: %q from author.name", name)
			return name, SourceAuthorConfig, true
		}
	}

	if name := strings.TrimSpace(os.Getenv(AuthorEnv)); name != "" {
		logDebug("[git] FindAuthor: %q from %s", name, AuthorEnv)
		return name, SourceEnv, true
	}

	if cfg != nil {
		if name := strings.TrimSpace(cfg.User.Name); name != "" {
			logDebug("[git] FindAuthor: %q from user.name", name)
			return name, SourceUserConfig, true
		}
	}

	logDebug("[git] FindAuthor: no author configured")
	return "", "", false
}

// loadConfig returns the merged repository and global configuration, or
// the global configuration alone when dir is not inside a repository.
func loadConfig(dir string) *config.Config {
	if repo, err := openRepo(dir); err == nil {
		cfg, err := repo.ConfigScoped(config.GlobalScope)
		if err == nil {
			return cfg
		}
		logDebug("[git] reading repository config: %v", err)
	} else {
		logDebug("[git] %v", err)
	}

	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		logDebug("[git] reading global config: %v", err)
		return nil
	}
	return cfg
}
