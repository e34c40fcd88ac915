package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/contentstore"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

var (
	apiURL   string
	stateDir string
	token    string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Operate a site content server from the command line",
	Long: `sitectl reads and writes content sections, uploads media replacements and
scans pages for media against a running site content server. Sections read
from the server are cached locally so they stay readable while it is down.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultAPI := os.Getenv("SITECTL_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:" + config.Port + "/api"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "content API base URL")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state", ".sitectl", "directory holding the saved token and the local content cache")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (defaults to the one saved by login)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
}

func tokenPath() string {
	return filepath.Join(stateDir, "token")
}

func loadToken() string {
	if token != "" {
		return token
	}
	raw, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func saveToken(value string) error {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return os.WriteFile(tokenPath(), []byte(value+"\n"), 0o600)
}

func newRemote() *contentstore.RemoteStore {
	return contentstore.NewRemoteStore(apiURL, loadToken(), &http.Client{Timeout: timeout})
}

func newLocal() *contentstore.LocalStore {
	return contentstore.NewLocalStore(filepath.Join(stateDir, "content.json"), config.LocalStoreNamespace, config.LocalStoreQuotaBytes)
}

func newLogger() *logging.ChanneledLogger {
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: true,
		Writer:          os.Stderr,
		JSONFormat:      false,
		DefaultLevel:    logging.ParseLevel(config.LogLevel),
	})
	if err != nil {
		return logging.NewDiscardLogger()
	}
	return logger
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput reads a file argument, or stdin for "-".
func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	return raw, err
}
