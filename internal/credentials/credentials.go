// Package credentials finds the password a tool authenticates with: a one
// line file in the user's home directory, a Vault KV secret, or an
// interactive prompt.
package credentials

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dxbtools/admintools/internal/logging"
	"go.uber.org/zap"
)

// ErrEmptyPasswordFile is returned when the password file exists but its
// first line is blank.
var ErrEmptyPasswordFile = errors.New("password file is empty")

// Source looks up a stored password for a tool.
type Source interface {
	Password(ctx context.Context, tool string) (string, error)
}

// Prompter asks the user for a password.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Request describes one lookup.
type Request struct {
	// Tool keys the stored secret.
	Tool string
	// UseFile selects the home directory password file.
	UseFile bool
	// File is the password file name relative to the home directory.
	File string
	// EmptyIsFatal turns a blank password file into ErrEmptyPasswordFile
	// instead of falling through to the prompt.
	EmptyIsFatal bool
	Label        string
	// Quiet suppresses the missing file warning.
	Quiet bool
}

// Resolver tries the configured sources in order: file, store, prompt.
type Resolver struct {
	Store  Source
	Prompt Prompter
	// Warn receives user facing warnings, usually stderr.
	Warn io.Writer
	// Home overrides os.UserHomeDir.
	Home func() (string, error)
}

// Password returns the password for req.
func (r *Resolver) Password(ctx context.Context, req Request) (string, error) {
	if req.UseFile {
		path, err := r.filePath(req.File)
		if err != nil {
			return "", err
		}
		pw, err := ReadPasswordFile(path)
		switch {
		case err == nil:
			return pw, nil
		case errors.Is(err, ErrEmptyPasswordFile):
			if req.EmptyIsFatal {
				return "", fmt.Errorf("%s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			logging.L().Warn("password file not found", zap.String("path", path))
			if !req.Quiet && r.Warn != nil {
				fmt.Fprintf(r.Warn, "\n\tWARNING: Did not find %s; ignoring password file\n\n", path)
			}
		default:
			return "", err
		}
	} else if r.Store != nil {
		pw, err := r.Store.Password(ctx, req.Tool)
		if err == nil && pw != "" {
			return pw, nil
		}
		if err != nil {
			logging.L().Warn("stored password unavailable", zap.String("tool", req.Tool), zap.Error(err))
		}
	}
	if r.Prompt == nil {
		return "", errors.New("no password source available")
	}
	return r.Prompt.Prompt(req.Label)
}

func (r *Resolver) filePath(name string) (string, error) {
	home := r.Home
	if home == nil {
		home = os.UserHomeDir
	}
	dir, err := home()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

// ReadPasswordFile returns the first line of path with surrounding
// whitespace removed. Further lines are ignored.
func ReadPasswordFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	pw := strings.TrimSpace(line)
	if pw == "" {
		return "", ErrEmptyPasswordFile
	}
	return pw, nil
}
