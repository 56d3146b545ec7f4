package config

import (
	"net"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/folio/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version other than 1.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidExtension indicates the document extension is not of the form ".ext".
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrInvalidPolicy indicates an unknown on_malformed value.
	ErrInvalidPolicy = errors.New("invalid malformed-document policy")

	// ErrUnknownRenderExtension indicates an unsupported render.extensions entry.
	ErrUnknownRenderExtension = errors.New("unknown render extension")

	// ErrInvalidAddr indicates server.addr is not host:port.
	ErrInvalidAddr = errors.New("invalid listen address")
)

// KnownRenderExtensions lists the values render.extensions accepts.
var KnownRenderExtensions = []string{
	"gfm", "table", "strikethrough", "linkify", "tasklist", "footnote", "definition", "typographer",
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if err := validatePath(cfg.PostsDir); err != nil {
		errs = append(errs, &FieldError{Field: "posts_dir", Value: cfg.PostsDir, Err: err})
	}

	if !validExtension(cfg.Extension) {
		errs = append(errs, &FieldError{Field: "extension", Value: cfg.Extension, Err: ErrInvalidExtension})
	}

	if cfg.OnMalformed != OnMalformedSkip && cfg.OnMalformed != OnMalformedFail {
		errs = append(errs, &FieldError{Field: "on_malformed", Value: cfg.OnMalformed, Err: ErrInvalidPolicy})
	}

	for _, ext := range cfg.Render.Extensions {
		if !slices.Contains(KnownRenderExtensions, ext) {
			errs = append(errs, &FieldError{Field: "render.extensions", Value: ext, Err: ErrUnknownRenderExtension})
		}
	}

	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		errs = append(errs, &FieldError{Field: "server.addr", Value: cfg.Server.Addr, Err: ErrInvalidAddr})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	if filepath.Clean(path) == "" {
		return ErrInvalidPath
	}
	return nil
}

func validExtension(ext string) bool {
	return len(ext) > 1 && ext[0] == '.' && !strings.ContainsAny(ext[1:], `./\`)
}

// FieldError describes an invalid value for one config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError carries every problem Validate found in a loaded config.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "validating config: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the field errors and marks the whole as ErrInvalidConfig.
func (e *ValidationError) Unwrap() []error {
	return append(slices.Clone(e.Errs), errors.ErrInvalidConfig)
}
