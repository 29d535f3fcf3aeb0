package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/grovetools/reload/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	JSON    bool
	out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		out:     os.Stderr,
	}
}

// WithJSON makes Handle print the error as a JSON document.
func (h *ErrorHandler) WithJSON(enabled bool) *ErrorHandler {
	h.JSON = enabled
	return h
}

// WithWriter redirects the handler's output.
func (h *ErrorHandler) WithWriter(w io.Writer) *ErrorHandler {
	h.out = w
	return h
}

// Handle prints err with a hint that depends on its code and returns it.
func (h *ErrorHandler) Handle(cmd *cobra.Command, err error) error {
	reloadErr, isReloadErr := errors.As(err)

	if h.JSON {
		if !isReloadErr {
			reloadErr = errors.Wrap(err, errors.ErrCodeInternal, err.Error())
		}
		fmt.Fprintln(h.out, reloadErr.ToJSON())
		return err
	}

	red := lipgloss.NewStyle().Bold(true).Foreground(palette.Red)
	fmt.Fprintf(h.out, "%s %v\n", red.Render("Error:"), err)

	if hint := hintFor(err, reloadErr); hint != "" {
		fmt.Fprintln(h.out, mutedStyle.Render(hint))
	} else if cmd != nil && !isReloadErr {
		fmt.Fprintln(h.out, mutedStyle.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
	}

	// If verbose mode, show full error details
	if h.Verbose && isReloadErr {
		fmt.Fprintf(h.out, "\nError details:\n%s\n", reloadErr.ToJSON())
	}
	return err
}

func hintFor(err error, reloadErr *errors.ReloadError) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		return "Create a reload.yml (see 'reload schema') or pass --config."
	case errors.ErrCodeConfigValidation:
		return "Run 'reload schema' to see the accepted keys."
	case errors.ErrCodeConfigInvalid, errors.ErrCodeInvalidPattern:
		return "Fix the configuration file and run 'reload validate'."
	}

	switch {
	case errors.Is(err, errors.ErrCodeSubscriptionFailed):
		return fmt.Sprintf("Check that %v exists and is readable.", detail(reloadErr, "path"))
	case errors.Is(err, errors.ErrCodeSpawnFailed):
		return "Check that the command exists and its working_dir is valid."
	case errors.Is(err, errors.ErrCodeTerminationFailed):
		return "The previous process could not be stopped; stop it manually before retrying."
	case errors.Is(err, errors.ErrCodeWatchFailed):
		return "The watcher stopped; raising fs.inotify.max_user_watches may help."
	}
	return ""
}

func detail(reloadErr *errors.ReloadError, key string) interface{} {
	if reloadErr == nil || reloadErr.Details[key] == nil {
		return "the watched path"
	}
	return reloadErr.Details[key]
}
