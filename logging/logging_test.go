package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Console = true
	cfg.Level = "debug"

	logger := WithMethod(NewWithWriter(cfg, &buf), "BSM")
	logger.Debug().Float64("price", 0.5).Msg("priced")

	require.Contains(t, buf.String(), "priced")
	require.Contains(t, buf.String(), "BSM")
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Console = true

	logger := NewWithWriter(cfg, &buf)
	logger.Debug().Msg("hidden")
	require.Empty(t, buf.String())
}

func TestNewNoWriters(t *testing.T) {
	logger := New(DefaultConfig())
	require.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "digicall.log")
	cfg := DefaultConfig()
	cfg.File = path

	logger := WithRequestID(New(cfg), "abc")
	logger.Info().Msg("written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written")
	require.Contains(t, string(data), "abc")
}

func TestNewFileUnwritable(t *testing.T) {
	// a regular file where the log directory should be
	parent := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(parent, nil, 0644))

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.File = filepath.Join(parent, "logs", "digicall.log")

	logger := NewWithWriter(cfg, &buf)
	require.Equal(t, zerolog.Disabled, logger.GetLevel())
	require.Contains(t, buf.String(), "file logging disabled")
	require.Contains(t, buf.String(), cfg.File)
}

func TestCheckLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		require.NoError(t, CheckLevel(level))
	}
	for _, level := range []string{"debg", "", "trace"} {
		require.True(t, errors.Is(CheckLevel(level), ErrUnknownLevel))
	}
}
