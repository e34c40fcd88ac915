package server

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/container"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/database"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewTableCreator().CreateSchema(context.Background(), db))

	dir := t.TempDir()
	siteRoot := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(siteRoot, 0o755))

	logger := logging.NewDiscardLogger()
	return container.NewContainer(db, container.Settings{
		JWTSecret: "server-test-secret",
		SiteRoot:  siteRoot,
		BackupDir: filepath.Join(dir, "backups"),
	}, nil, logger, performance.NewTracker(logger, time.Second))
}

func TestOptions_Defaults(t *testing.T) {
	t.Parallel()
	opts := Options{ReadTimeout: 2 * time.Second}.withDefaults()
	assert.Equal(t, ":8080", opts.Addr)
	assert.Equal(t, 2*time.Second, opts.ReadHeaderTimeout)
	assert.Equal(t, http.DefaultMaxHeaderBytes, opts.MaxHeaderBytes)

	opts = Options{Addr: ":9000", ReadHeaderTimeout: time.Second, MaxHeaderBytes: 4096}.withDefaults()
	assert.Equal(t, ":9000", opts.Addr)
	assert.Equal(t, time.Second, opts.ReadHeaderTimeout)
	assert.Equal(t, 4096, opts.MaxHeaderBytes)
}

func TestServer_ServesUntilStopped(t *testing.T) {
	srv := New(Options{Addr: "127.0.0.1:0", ReadTimeout: 5 * time.Second}, newContainer(t))
	require.NoError(t, srv.Listen())
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	resp, err := http.Get("http://" + srv.Addr() + "/api/content")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	assert.NoError(t, <-done)
}

func TestServer_ListenFailsOnTakenPort(t *testing.T) {
	first := New(Options{Addr: "127.0.0.1:0"}, newContainer(t))
	require.NoError(t, first.Listen())
	t.Cleanup(func() { first.listener.Close() })

	second := New(Options{Addr: first.Addr()}, newContainer(t))
	assert.Error(t, second.Listen())
}
