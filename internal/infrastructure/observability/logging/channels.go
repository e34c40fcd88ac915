// Package logging provides structured logging channels for the site content
// server, one slog.Logger per logical subsystem.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Channel represents a logical logging channel for different system components
type Channel string

const (
	// System channels
	ChannelSystem   Channel = "system"   // General system operations
	ChannelStartup  Channel = "startup"  // Application startup and initialization
	ChannelShutdown Channel = "shutdown" // Application shutdown and cleanup

	// Business logic channels
	ChannelAuth    Channel = "auth"    // Authentication and authorization
	ChannelContent Channel = "content" // Section reads and writes, page rendering
	ChannelMedia   Channel = "media"   // Catalog scans, assets, replacements

	// Infrastructure channels
	ChannelDatabase Channel = "database" // Database operations and queries
	ChannelHTTP     Channel = "http"     // Request handling and websocket events
	ChannelPerf     Channel = "performance"
)

var allChannels = []Channel{
	ChannelSystem, ChannelStartup, ChannelShutdown,
	ChannelAuth, ChannelContent, ChannelMedia,
	ChannelDatabase, ChannelHTTP, ChannelPerf,
}

// ChanneledLogger provides structured logging with multiple channels
type ChanneledLogger struct {
	channels map[Channel]*slog.Logger
	levels   map[Channel]*slog.LevelVar
	files    []*os.File
	config   *LoggerConfig
	mu       sync.RWMutex
}

// LoggerConfig contains configuration options for the channeled logger
type LoggerConfig struct {
	OutputToFile    bool
	OutputToConsole bool
	LogDirectory    string
	JSONFormat      bool
	IncludeSource   bool
	DefaultLevel    slog.Level
	ChannelLevels   map[Channel]slog.Level

	// Writer overrides console output; tests use it to capture records.
	Writer io.Writer
}

// DefaultLoggerConfig returns a sensible default configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: true,
		LogDirectory:    "logs",
		JSONFormat:      true,
		IncludeSource:   false,
		DefaultLevel:    slog.LevelInfo,
		ChannelLevels:   make(map[Channel]slog.Level),
	}
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewChanneledLogger creates a new channeled logger with the given configuration
func NewChanneledLogger(config *LoggerConfig) (*ChanneledLogger, error) {
	if config == nil {
		config = DefaultLoggerConfig()
	}

	cl := &ChanneledLogger{
		channels: make(map[Channel]*slog.Logger, len(allChannels)),
		levels:   make(map[Channel]*slog.LevelVar, len(allChannels)),
		config:   config,
	}

	if config.OutputToFile {
		if err := os.MkdirAll(config.LogDirectory, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	for _, channel := range allChannels {
		if err := cl.createChannelLogger(channel); err != nil {
			cl.Close()
			return nil, fmt.Errorf("failed to create logger for channel %s: %w", channel, err)
		}
	}

	return cl, nil
}

// NewDiscardLogger returns a logger that drops every record.
func NewDiscardLogger() *ChanneledLogger {
	cl, _ := NewChanneledLogger(&LoggerConfig{
		OutputToConsole: true,
		Writer:          io.Discard,
		DefaultLevel:    slog.LevelError,
	})
	return cl
}

func (cl *ChanneledLogger) createChannelLogger(channel Channel) error {
	level := new(slog.LevelVar)
	level.Set(cl.config.DefaultLevel)
	if channelLevel, exists := cl.config.ChannelLevels[channel]; exists {
		level.Set(channelLevel)
	}

	var writers []io.Writer
	if cl.config.OutputToConsole {
		if cl.config.Writer != nil {
			writers = append(writers, cl.config.Writer)
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	if cl.config.OutputToFile {
		path := filepath.Join(cl.config.LogDirectory, string(channel)+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		cl.files = append(cl.files, file)
		writers = append(writers, file)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = os.Stdout
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cl.config.IncludeSource}
	var handler slog.Handler
	if cl.config.JSONFormat {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	cl.channels[channel] = slog.New(handler).With(slog.String("channel", string(channel)))
	cl.levels[channel] = level
	return nil
}

func (cl *ChanneledLogger) System() *slog.Logger   { return cl.GetChannel(ChannelSystem) }
func (cl *ChanneledLogger) Startup() *slog.Logger  { return cl.GetChannel(ChannelStartup) }
func (cl *ChanneledLogger) Shutdown() *slog.Logger { return cl.GetChannel(ChannelShutdown) }
func (cl *ChanneledLogger) Auth() *slog.Logger     { return cl.GetChannel(ChannelAuth) }
func (cl *ChanneledLogger) Content() *slog.Logger  { return cl.GetChannel(ChannelContent) }
func (cl *ChanneledLogger) Media() *slog.Logger    { return cl.GetChannel(ChannelMedia) }
func (cl *ChanneledLogger) Database() *slog.Logger { return cl.GetChannel(ChannelDatabase) }
func (cl *ChanneledLogger) HTTP() *slog.Logger     { return cl.GetChannel(ChannelHTTP) }
func (cl *ChanneledLogger) Perf() *slog.Logger     { return cl.GetChannel(ChannelPerf) }

// GetChannel returns a logger for a specific channel
func (cl *ChanneledLogger) GetChannel(channel Channel) *slog.Logger {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	if logger, exists := cl.channels[channel]; exists {
		return logger
	}
	return cl.channels[ChannelSystem]
}

// WithOperation returns a logger with operation context
func (cl *ChanneledLogger) WithOperation(channel Channel, operation string) *slog.Logger {
	return cl.GetChannel(channel).With(slog.String("operation", operation))
}

// LogSlowQuery logs database operations that exceed the configured threshold
func (cl *ChanneledLogger) LogSlowQuery(query string, duration, threshold time.Duration) {
	if duration <= threshold {
		return
	}
	cl.Database().Warn("Slow query detected",
		"query", sanitizeQuery(query),
		"duration", duration,
		"threshold", threshold)
}

// SetChannelLevel changes the level of one channel at runtime
func (cl *ChanneledLogger) SetChannelLevel(channel Channel, level slog.Level) error {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	lv, ok := cl.levels[channel]
	if !ok {
		return fmt.Errorf("unknown log channel %q", channel)
	}
	lv.Set(level)
	return nil
}

// GetChannelLevels returns the current level name of every channel
func (cl *ChanneledLogger) GetChannelLevels() map[string]string {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	out := make(map[string]string, len(cl.levels))
	for channel, lv := range cl.levels {
		out[string(channel)] = lv.Level().String()
	}
	return out
}

// Close releases any open log files
func (cl *ChanneledLogger) Close() error {
	var firstErr error
	for _, f := range cl.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cl.files = nil
	return firstErr
}

func sanitizeQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > 200 {
		return query[:200] + "..."
	}
	return query
}
