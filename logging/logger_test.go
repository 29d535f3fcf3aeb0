package logging

import (
	"bytes"
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func resetLoggers() {
	loggersMu.Lock()
	loggers = make(map[string]*logrus.Entry)
	levelOverride = nil
	loggersMu.Unlock()
}

func TestNewLogger(t *testing.T) {
	defer resetLoggers()

	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}

	if again := NewLogger("test-component"); again != logger {
		t.Error("Expected the same entry for the same component")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	entry := logger.WithField("component", "test")
	entry.Info("Test message")

	output := buf.String()

	if !strings.Contains(output, "[INFO]") {
		t.Errorf("Expected output to contain [INFO], got: %s", output)
	}
	if !strings.Contains(output, "[test]") {
		t.Errorf("Expected output to contain [test], got: %s", output)
	}
	if !strings.Contains(output, "Test message") {
		t.Errorf("Expected output to contain 'Test message', got: %s", output)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "process started",
				Data: logrus.Fields{
					"component": "supervisor",
					"pid":       4242,
					"rule":      "api",
				},
			},
			want: []string{"[INFO]", "[supervisor]", "process started", "pid=4242 rule=api"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data: logrus.Fields{
					"component": "watch",
				},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"[watch]"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "test message with caller",
					Data: logrus.Fields{
						"component": "engine",
					},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.TestFunction",
					},
				}
			}(),
			want: []string{"[INFO]", "[engine]", "test message with caller", "[file.go:42 package.TestFunction]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}

			output, err := formatter.Format(tt.entry)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			outputStr := string(output)
			for _, want := range tt.want {
				if !strings.Contains(outputStr, want) {
					t.Errorf("Expected output to contain '%s', got: %s", want, outputStr)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(outputStr, notWant) {
					t.Errorf("Expected output NOT to contain '%s', got: %s", notWant, outputStr)
				}
			}
		})
	}
}

func TestEnvironmentVariables(t *testing.T) {
	defer resetLoggers()

	t.Setenv("RELOAD_LOG_LEVEL", "debug")
	t.Setenv("RELOAD_LOG_CALLER", "true")

	logger := NewLogger("env-test")

	if logger.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level from env, got %v", logger.Logger.GetLevel())
	}
	if !logger.Logger.ReportCaller {
		t.Error("Expected caller reporting to be enabled from env")
	}
}

func TestSetLevelAppliesToExistingAndNewLoggers(t *testing.T) {
	defer resetLoggers()

	before := NewLogger("before")
	SetLevel(logrus.DebugLevel)
	after := NewLogger("after")

	if before.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("existing logger level = %v, want debug", before.Logger.GetLevel())
	}
	if after.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("new logger level = %v, want debug", after.Logger.GetLevel())
	}
}

func TestPrettyLoggerLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Command([]string{"echo", "hi"})
	p.Reloading("/src/lib.rs")
	p.ErrorPretty("rule api failed", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, Prefix) {
			t.Errorf("line %q does not start with %s", line, Prefix)
		}
	}
	if !strings.Contains(lines[0], "echo hi") {
		t.Errorf("command line missing argv: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Reloading from '") || !strings.Contains(lines[1], "/src/lib.rs") {
		t.Errorf("reload line missing path: %q", lines[1])
	}
	if !strings.Contains(lines[2], "boom") {
		t.Errorf("error line missing cause: %q", lines[2])
	}
}

func TestGlobalWriterKeepsLinesWhole(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	defer SetGlobalOutput(os.Stderr)

	p := NewPrettyLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.InfoPretty("watching")
		}()
	}
	wg.Wait()

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.HasPrefix(line, Prefix) || !strings.HasSuffix(line, "watching") {
			t.Errorf("interleaved line: %q", line)
		}
	}
}
