package config

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/ncruces/go-strftime"

	"github.com/colonyops/todonext/internal/core/styles"
	"github.com/colonyops/todonext/internal/core/todo"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// date formats, the archive scheme, colors and file accessibility. The configPath
// argument specifies the config file location to validate (empty string skips
// config file check). This calls Validate() first for basic structural
// validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateDateFormats(),
		c.validateArchive(),
		c.validateColors(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	known := slices.Concat(todo.DateKeys(), []string{ShortenURL, ShortenFile})
	for _, key := range c.Shorten {
		if !slices.Contains(known, key) {
			warnings = append(warnings, ValidationWarning{
				Category: "Shorten",
				Item:     key,
				Message:  "property cannot be shortened and is shown unchanged",
			})
		}
	}

	if c.Editor == "" && os.Getenv("EDITOR") == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Editor",
			Message:  "neither editor nor $EDITOR is set, falling back to vi",
		})
	}

	return warnings
}

// validateFileAccess checks config file, todo file, and editor executable.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("todo_file", c.TodoFile, isFileOrNotExist),
		criterio.Run("todo_file", c.TodoDir(), isDirectoryOrNotExist),
		criterio.Run("editor", c.Editor, editorExists),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// editorExists validates that the first word of the editor command is executable.
func editorExists(editor string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("executable not found: %s", fields[0])
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}
	return nil
}

// isFileOrNotExist validates that a path is a regular file or doesn't exist.
func isFileOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// validateDateFormats checks that every custom format is a strftime layout.
// An underscore stands for a space.
func (c *Config) validateDateFormats() error {
	var errs criterio.FieldErrorsBuilder
	for i, format := range c.DateFormats {
		if _, err := strftime.Layout(strings.ReplaceAll(format, "_", " ")); err != nil {
			errs = errs.Append(fmt.Sprintf("date_formats[%d]", i), fmt.Errorf("invalid format %q: %w", format, err))
		}
	}
	return errs.ToError()
}

// validateArchive checks that the filename scheme is a strftime template
// with at least one date placeholder, so archives are split by date.
func (c *Config) validateArchive() error {
	var errs criterio.FieldErrorsBuilder

	scheme := c.Archive.FilenameScheme
	n, err := countPlaceholders(scheme)
	switch {
	case err != nil:
		errs = errs.Append("archive.filename_scheme", fmt.Errorf("invalid scheme %q: %w", scheme, err))
	case n == 0:
		errs = errs.Append("archive.filename_scheme", fmt.Errorf("scheme %q has no date placeholder", scheme))
	}

	if strings.Contains(c.Archive.UnsortedFilename, "%") {
		errs = errs.Append("archive.unsorted_filename", fmt.Errorf("must be a plain file name"))
	}

	return errs.ToError()
}

func (c *Config) validateColors() error {
	var errs criterio.FieldErrorsBuilder
	for _, role := range styles.RoleNames() {
		color, ok := c.Colors[role]
		if !ok {
			continue
		}
		if !styles.ValidColor(color) {
			errs = errs.Append(fmt.Sprintf("colors.%s", role), fmt.Errorf("invalid color %q", color))
		}
	}
	return errs.ToError()
}

// specifiers lists the strftime conversions usable in file names.
const specifiers = "aAbBCdDeFgGhHIjmMpuUVwWyYz"

// countPlaceholders counts the date conversions in a strftime template.
func countPlaceholders(scheme string) (int, error) {
	n := 0
	for i := 0; i < len(scheme); i++ {
		if scheme[i] != '%' {
			continue
		}
		i++
		if i < len(scheme) && strings.IndexByte("-_0^#", scheme[i]) >= 0 {
			i++
		}
		if i >= len(scheme) {
			return n, fmt.Errorf("dangling %%")
		}
		switch {
		case scheme[i] == '%':
		case strings.IndexByte(specifiers, scheme[i]) >= 0:
			n++
		default:
			return n, fmt.Errorf("unsupported conversion %%%c", scheme[i])
		}
	}
	return n, nil
}
