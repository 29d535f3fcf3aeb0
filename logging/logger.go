package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// levelOverride is set by the CLI (--verbose) and wins over the environment.
	levelOverride *logrus.Level
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	entry := newLogger(component, ConfigFromEnv())
	loggers[component] = entry
	return entry
}

// SetLevel changes the level of every component logger, including ones
// created later.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	levelOverride = &level
	for _, entry := range loggers {
		entry.Logger.SetLevel(level)
		entry.Logger.SetOutput(structuredOutput(ConfigFromEnv(), level))
	}
}

func newLogger(component string, logCfg Config) *logrus.Entry {
	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	if levelOverride != nil {
		level = *levelOverride
	}
	logger.SetLevel(level)

	if logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	logger.SetOutput(structuredOutput(logCfg, level))

	return logger.WithField("component", component)
}

// structuredOutput decides where structured logs go. In "auto" mode they are
// shown only when debugging or when stderr is not an interactive terminal;
// interactive users see the pretty [reload] lines instead.
func structuredOutput(logCfg Config, level logrus.Level) io.Writer {
	mode := "auto"
	if logCfg.Format.StructuredToStderr != "" {
		mode = logCfg.Format.StructuredToStderr
	}

	switch mode {
	case "always":
		return GetGlobalOutput()
	case "never":
		return io.Discard
	}

	isDebug := os.Getenv("RELOAD_DEBUG") == "1" || level >= logrus.DebugLevel
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if isDebug || !isInteractive {
		return GetGlobalOutput()
	}
	return io.Discard
}
