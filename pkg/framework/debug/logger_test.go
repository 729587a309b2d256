package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", FlagLevel|FlagPrefix)

		logger.Info("Hello %s", "World")

		output := buf.String()
		if output != "[INFO] [TEST] Hello World\n" {
			t.Errorf("unexpected output %q", output)
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
		if logger.Enabled(LogLevelInfo) || !logger.Enabled(LogLevelError) {
			t.Error("Enabled does not follow the level")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetLevel(LogLevelOff)

		logger.Error("should not appear")

		if buf.Len() > 0 {
			t.Error("Logger at LogLevelOff should not write")
		}
		if logger.Enabled(LogLevelError) {
			t.Error("Enabled should be false when off")
		}
	})

	t.Run("FileInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile|FlagLevel)

		logger.Info("test")

		if output := buf.String(); !strings.Contains(output, "logger_test.go:") {
			t.Errorf("Missing caller file info in output: %s", output)
		}
	})

	t.Run("CallerDepth", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile)
		logger.SetLevel(LogLevelDebug)

		logger.Debug("d")
		logger.Info("i")
		logger.Warn("w")
		logger.Error("e")

		var moved bytes.Buffer
		logger.SetOutput(&moved)
		logger.Info("moved")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 4 {
			t.Fatalf("got %d lines, want 4: %q", len(lines), buf.String())
		}
		for _, line := range lines {
			if !strings.HasPrefix(line, "logger_test.go:") {
				t.Errorf("line %q does not name the calling file", line)
			}
		}
		if !strings.HasPrefix(moved.String(), "logger_test.go:") {
			t.Errorf("SetOutput did not redirect: %q", moved.String())
		}
	})

	t.Run("DefaultLogger", func(t *testing.T) {
		var buf bytes.Buffer
		SetOutput(&buf)
		SetLevel(LogLevelDebug)
		SetPrefix("blsaw")
		defer func() {
			SetOutput(os.Stderr)
			SetLevel(LogLevelInfo)
			SetPrefix("")
		}()

		Debug("debug %d", 1)
		Info("info %d", 2)
		Warn("warn %d", 3)
		Error("error %d", 4)

		output := buf.String()
		for _, want := range []string{"[DEBUG] [blsaw] debug 1", "[INFO] [blsaw] info 2", "[WARN] [blsaw] warn 3", "[ERROR] [blsaw] error 4"} {
			if !strings.Contains(output, want) {
				t.Errorf("missing %q in %q", want, output)
			}
		}
		if Default().Level() != LogLevelDebug {
			t.Error("SetLevel did not reach the default logger")
		}
	})
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "blsaw.log")
	logger, closer, err := NewFileLogger(path, "file", FlagLevel|FlagPrefix)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Warn("written to %s", "disk")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[WARN] [file] written to disk\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
		}
		if tt.expected == "UNKNOWN" {
			continue
		}
		parsed, err := ParseLevel(strings.ToLower(tt.expected))
		if err != nil || parsed != tt.level {
			t.Errorf("ParseLevel(%s) = %v, %v", tt.expected, parsed, err)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel should reject unknown names")
	}
}

func BenchmarkLogger(b *testing.B) {
	logger := New(bytes.NewBuffer(nil), "BENCH", DefaultFlags)

	b.Run("Enabled", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})

	b.Run("BelowLevel", func(b *testing.B) {
		logger.SetLevel(LogLevelError)
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})
}
