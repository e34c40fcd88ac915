package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/caching/stores"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/contentstore"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/database"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/email"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/media"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/performance"
	contentrepo "github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/persistence/content"
	userrepo "github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/persistence/user"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/templates"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
}

func (p *recordingPublisher) Publish(e messaging.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	db        *sql.DB
	siteRoot  string
	backupDir string
	events    *recordingPublisher
	content   *ContentService
	auth      *AuthService
	media     *MediaService
	pages     *PageService
	render    *RenderService
}

const testPage = `<html><head></head><body>
<section class="banner-section"><h1 class="banner-title">Default title</h1></section>
<img src="assets/picture/team-1.jpg">
<footer class="footer"><p class="copyright">old</p></footer>
</body></html>`

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	tc := database.NewTableCreator()
	require.NoError(t, tc.CreateSchema(ctx, db))
	_, err = tc.SeedAdmin(ctx, db, "admin@example.com", "hunter2")
	require.NoError(t, err)

	dir := t.TempDir()
	siteRoot := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(siteRoot, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(siteRoot, "index.html"), []byte(testPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(siteRoot, "admin.html"), []byte(testPage), 0o644))

	logger := logging.NewDiscardLogger()
	perf := performance.NewTracker(logger, time.Second)
	events := &recordingPublisher{}

	sections := contentrepo.NewSectionRepository(db, stores.NewContentStore(time.Minute))
	assets := contentrepo.NewMediaAssetRepository(db)
	replacements := contentrepo.NewReplacementRepository(db)

	contentService := NewContentService(contentstore.NewRepositoryStore(sections), sections, events, logger, perf)
	scanner := media.NewScanner(media.FileFetcher{Root: siteRoot}, media.ScanOptions{
		Prefixes:       []string{"assets/"},
		BannerSelector: ".banner-section",
		DefaultBanner:  "assets/picture/banner-bg.jpg",
	}, logger)
	pages := NewPageService(siteRoot, filepath.Join(dir, "backups"), events, logger)
	pipeline := templates.NewPipeline(
		templates.NewFieldApplier(templates.DefaultBindings()),
		templates.NewMatchSynchronizer(),
		templates.NewReplacer(".banner-section", "assets/picture/banner-bg.jpg"),
		[]string{"admin.html"},
	)

	return &testEnv{
		db:        db,
		siteRoot:  siteRoot,
		backupDir: filepath.Join(dir, "backups"),
		events:    events,
		content:   contentService,
		auth:      NewAuthService(userrepo.NewSQLUserRepository(db, logger), "test-secret", time.Hour, logger, perf),
		media: NewMediaService(scanner, []string{"index.html"}, media.NewImageProcessor(1<<20, 64),
			assets, replacements, events, logger, perf),
		pages:  pages,
		render: NewRenderService(pages, contentService, replacements, pipeline, logger, perf),
	}
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for x := 0; x < 120; x++ {
		for y := 0; y < 80; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return media.EncodeDataURI("image/png", buf.Bytes())
}

func TestContentService_SaveReplacesWholeSection(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.content.Save(ctx, content.SectionStats, content.Section{"teamMembers": "60", "winAwards": "12"}, "admin")
	require.NoError(t, err)
	_, err = env.content.Save(ctx, content.SectionStats, content.Section{"teamMembers": "75"}, "admin")
	require.NoError(t, err)

	got, found, err := env.content.Get(ctx, content.SectionStats)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, content.Section{"teamMembers": "75"}, got)

	all, err := env.content.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, []string{messaging.EventContentUpdated, messaging.EventContentUpdated}, env.events.types())
}

func TestContentService_RejectsUnknownSection(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.content.Save(context.Background(), "sidebar", content.Section{"x": "y"}, "admin")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, env.events.types())

	_, found, err := env.content.Get(context.Background(), content.SectionFooter)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Login(ctx, " Admin@Example.com ", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.True(t, res.User.IsAdmin)

	claims, err := env.auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)

	u, err := env.auth.CurrentUser(ctx, claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	_, err = env.auth.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestMediaService_UploadListDelete(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	asset, err := env.media.UploadAsset(ctx, UploadRequest{Kind: "image", Title: "Team captain", Data: pngDataURI(t)}, "admin")
	require.NoError(t, err)
	assert.Equal(t, content.CategoryPeople, asset.Category)
	assert.NotEmpty(t, asset.Thumbnail)

	list, err := env.media.ListAssets(ctx, "image")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, asset.ID, list[0].ID)

	require.NoError(t, env.media.DeleteAsset(ctx, asset.ID, "admin"))
	assert.ErrorIs(t, env.media.DeleteAsset(ctx, asset.ID, "admin"), ErrNotFound)
	assert.Equal(t, []string{messaging.EventAssetCreated, messaging.EventAssetDeleted}, env.events.types())
}

func TestMediaService_UploadValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []UploadRequest{
		{Kind: "audio", Title: "x", Data: pngDataURI(t)},
		{Kind: "image", Title: "", Data: pngDataURI(t)},
		{Kind: "image", Title: "x", Data: "not a data uri"},
		{Kind: "video", Title: "x", Data: pngDataURI(t)},
		{Kind: "image", Title: "x", Category: "wallpaper", Data: pngDataURI(t)},
	}
	for _, req := range cases {
		_, err := env.media.UploadAsset(ctx, req, "admin")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "kind=%s title=%q", req.Kind, req.Title)
	}
}

func TestMediaService_ReplacementsAreKeyedByNormalizedPath(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	data := pngDataURI(t)

	_, err := env.media.RecordReplacement(ctx, "../assets/picture/team-1.jpg", data, "admin")
	require.NoError(t, err)
	_, err = env.media.RecordReplacement(ctx, "./assets/picture/team-1.jpg", data, "admin")
	require.NoError(t, err)

	records, err := env.media.ListReplacements(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "assets/picture/team-1.jpg", records[0].OriginalPath)

	_, err = env.media.RecordReplacement(ctx, "assets/x.jpg", "plain text", "admin")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, env.media.DeleteReplacement(ctx, "assets/picture/team-1.jpg", "admin"))
	assert.ErrorIs(t, env.media.DeleteReplacement(ctx, "assets/picture/team-1.jpg", "admin"), ErrNotFound)
}

func TestMediaService_UploadCategoryIsFilterable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	asset, err := env.media.UploadAsset(context.Background(),
		UploadRequest{Kind: "image", Title: "Arena", Category: " games ", Data: pngDataURI(t)}, "admin")
	require.NoError(t, err)
	assert.Equal(t, content.CategoryGames, asset.Category)

	sel, err := media.ParseSelection("image", string(asset.Category))
	require.NoError(t, err)
	assert.Equal(t, asset.Category, sel.Category)
}

func TestMediaService_ReplacementPayloadMustFitOriginal(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	clip := media.EncodeDataURI("video/mp4", []byte("not really mp4"))

	rejected := map[string]string{
		"assets/picture/team-1.jpg": clip,
		"videos/trailer.mp4":        pngDataURI(t),
		"assets/picture/huge.jpg":   media.EncodeDataURI("image/png", make([]byte, 1<<20+1)),
	}
	for path, data := range rejected {
		_, err := env.media.RecordReplacement(ctx, path, data, "admin")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, path)
	}

	_, err := env.media.RecordReplacement(ctx, "videos/trailer.mp4", clip, "admin")
	require.NoError(t, err)
	_, err = env.media.RecordReplacement(ctx, "https://www.youtube.com/embed/abc", clip, "admin")
	require.NoError(t, err)

	records, err := env.media.ListReplacements(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestMediaService_CatalogScansSitePages(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	catalog, report := env.media.Catalog(context.Background(), media.Selection{})
	assert.Equal(t, 1, report.Scanned)
	assert.Empty(t, report.Failed)
	assert.True(t, catalog.Contains("assets/picture/team-1.jpg"))
	assert.True(t, catalog.Contains("assets/picture/banner-bg.jpg"))
}

func TestPageService_WriteSnapshotsPreviousContent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	snapshot, err := env.pages.Write("index.html", []byte("<p>new</p>"), "admin")
	require.NoError(t, err)

	prev, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(prev))

	current, err := env.pages.Read("index.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>new</p>", string(current))
	assert.Equal(t, []string{messaging.EventPageSaved}, env.events.types())
}

func TestPageService_RejectsBadNames(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, name := range []string{"../secret.html", "index.php", "sub/index.html", ""} {
		_, err := env.pages.Read(name)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, name)
	}
	_, err := env.pages.Write("missing.html", []byte("x"), "admin")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = os.Stat(filepath.Join(env.siteRoot, "missing.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRenderService_AppliesContentAndReplacements(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	data := pngDataURI(t)

	_, err := env.content.Save(ctx, content.SectionHomeHeader, content.Section{"title": "Season Finals"}, "admin")
	require.NoError(t, err)
	_, err = env.content.Save(ctx, content.SectionFooter, content.Section{"copyright": "© 2026 Team"}, "admin")
	require.NoError(t, err)
	_, err = env.media.RecordReplacement(ctx, "assets/picture/team-1.jpg", data, "admin")
	require.NoError(t, err)

	out, stats, err := env.render.Render(ctx, "index.html")
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Season Finals")
	assert.Contains(t, html, "© 2026 Team")
	assert.Contains(t, html, `data-original-src="assets/picture/team-1.jpg"`)
	assert.Equal(t, 2, stats.Fields.Applied)
	assert.Equal(t, 1, stats.Replacements)

	admin, stats, err := env.render.Render(ctx, "admin.html")
	require.NoError(t, err)
	assert.True(t, stats.AdminPage)
	assert.NotContains(t, string(admin), "data-original-src")
}

func TestRenderService_MissingPage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, _, err := env.render.Render(context.Background(), "nope.html")
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeMailer struct {
	sent []email.ContactMessage
	err  error
}

func (m *fakeMailer) SendContactMessage(msg email.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestContactService_Submit(t *testing.T) {
	t.Parallel()
	logger := logging.NewDiscardLogger()
	mailer := &fakeMailer{}
	svc := NewContactService(mailer, logger)

	require.NoError(t, svc.Submit(email.ContactMessage{Name: " Ana ", Email: "ana@example.com", Message: "Hello"}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Ana", mailer.sent[0].Name)

	var verr *ValidationError
	assert.ErrorAs(t, svc.Submit(email.ContactMessage{Name: "Ana", Email: "bad", Message: "Hello"}), &verr)
	assert.ErrorAs(t, svc.Submit(email.ContactMessage{Name: "Ana", Email: "ana@example.com"}), &verr)

	disabled := NewContactService(nil, logger)
	assert.False(t, disabled.Enabled())
	assert.ErrorIs(t, disabled.Submit(email.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "Hi"}), ErrContactDisabled)
}
