package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folio-site/folio/backend/internal/config"
	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/pkg/client"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{CORSOrigins: []string{"*"}},
		JWT:       config.JWTConfig{Secret: "e2e-secret", AccessTokenTTL: time.Hour},
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 100},
	}
}

// newSite starts a server on in-memory deps with one provisioned admin.
func newSite(t *testing.T) (*client.Client, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	deps := MemoryDeps(store)
	_, err = deps.Users.Provision(context.Background(), "admin", "hunter2")
	require.NoError(t, err)

	ts := httptest.NewServer(NewRouter(testConfig(), deps))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL, ts.Client())
	require.NoError(t, err)
	token, err := c.Login(context.Background(), "admin", "hunter2")
	require.NoError(t, err)
	return c, token
}

func TestLoginAndVerify(t *testing.T) {
	c, token := newSite(t)
	ctx := context.Background()

	u, err := c.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	for _, creds := range [][2]string{{"admin", "wrong"}, {"root", "hunter2"}} {
		tok, err := c.Login(ctx, creds[0], creds[1])
		assert.Empty(t, tok)
		assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))
	}

	_, err = c.Verify(ctx, token+"x")
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))
}

func TestPortfolioRoundTripFilterDelete(t *testing.T) {
	c, token := newSite(t)
	ctx := context.Background()

	a, err := c.CreatePortfolio(ctx, token, client.PortfolioForm{Title: strp("A"), Description: strp("B"), Type: strp("web")}, nil)
	require.NoError(t, err)
	got, err := c.GetPortfolio(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Description)
	assert.Equal(t, models.TypeWeb, got.Type)
	assert.False(t, got.IsFeatured)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = c.CreatePortfolio(ctx, token, client.PortfolioForm{Title: strp("Phone app"), Description: strp("has FOO inside"), Type: strp("mobile")}, nil)
	require.NoError(t, err)
	_, err = c.CreatePortfolio(ctx, token, client.PortfolioForm{Title: strp("Poster"), Description: strp("print"), Type: strp("design")}, nil)
	require.NoError(t, err)

	mobile, err := c.ListPortfolio(ctx, client.PortfolioQuery{Type: "mobile"})
	require.NoError(t, err)
	require.Len(t, mobile, 1)
	assert.Equal(t, models.TypeMobile, mobile[0].Type)

	foo, err := c.ListPortfolio(ctx, client.PortfolioQuery{Search: "foo"})
	require.NoError(t, err)
	require.Len(t, foo, 1)
	assert.Equal(t, "Phone app", foo[0].Title)

	require.NoError(t, c.DeletePortfolio(ctx, token, a.ID))
	_, err = c.GetPortfolio(ctx, a.ID)
	assert.Equal(t, http.StatusNotFound, client.StatusOf(err))
	assert.Equal(t, http.StatusNotFound, client.StatusOf(c.DeletePortfolio(ctx, token, a.ID)))
}

func TestAchievementsSortedByYear(t *testing.T) {
	c, token := newSite(t)
	ctx := context.Background()
	for _, in := range []struct {
		year int
		item string
	}{{2020, "a"}, {2024, "b"}, {2020, "c"}, {2022, "d"}} {
		_, err := c.CreateAchievement(ctx, token, in.year, []string{in.item})
		require.NoError(t, err)
	}
	list, err := c.ListAchievements(ctx)
	require.NoError(t, err)
	var got []string
	for _, a := range list {
		got = append(got, a.Items[0])
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
}

func TestUnauthenticatedMutationsAreRejected(t *testing.T) {
	c, token := newSite(t)
	ctx := context.Background()

	item, err := c.CreatePortfolio(ctx, token, client.PortfolioForm{Title: strp("Keep"), Description: strp("me"), Type: strp("web")}, nil)
	require.NoError(t, err)
	ach, err := c.CreateAchievement(ctx, token, 2023, []string{"x"})
	require.NoError(t, err)
	_, err = c.SubmitContact(ctx, client.ContactForm{Name: "N", Email: "e", Message: "m"})
	require.NoError(t, err)
	msgs, err := c.ListMessages(ctx, token)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	msgID := msgs[0].ID

	calls := map[string]error{}
	_, calls["portfolio create"] = c.CreatePortfolio(ctx, "", client.PortfolioForm{Title: strp("X"), Description: strp("Y"), Type: strp("web")}, nil)
	_, calls["portfolio update"] = c.UpdatePortfolio(ctx, "", item.ID, client.PortfolioForm{Title: strp("changed")}, nil)
	calls["portfolio delete"] = c.DeletePortfolio(ctx, "", item.ID)
	_, calls["achievement create"] = c.CreateAchievement(ctx, "", 2020, []string{"y"})
	_, calls["achievement update"] = c.UpdateAchievement(ctx, "", ach.ID, 1999, []string{"z"})
	calls["achievement delete"] = c.DeleteAchievement(ctx, "", ach.ID)
	_, calls["contact list"] = c.ListMessages(ctx, "")
	_, calls["contact get"] = c.GetMessage(ctx, "", msgID)
	_, calls["contact read"] = c.MarkRead(ctx, "bogus", msgID)
	calls["contact delete"] = c.DeleteMessage(ctx, "", msgID)
	for name, err := range calls {
		assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err), name)
	}

	got, err := c.GetPortfolio(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)
	list, err := c.ListPortfolio(ctx, client.PortfolioQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	a, err := c.GetAchievement(ctx, ach.ID)
	require.NoError(t, err)
	assert.Equal(t, 2023, a.Year)
	m, err := c.GetMessage(ctx, token, msgID)
	require.NoError(t, err)
	assert.False(t, m.IsRead)
}

func TestPortfolioUploads(t *testing.T) {
	c, token := newSite(t)
	ctx := context.Background()
	form := client.PortfolioForm{Title: strp("Shot"), Description: strp("d"), Type: strp("design")}

	_, err := c.CreatePortfolio(ctx, token, form, &client.Image{Filename: "big.png", Data: bytes.NewReader(make([]byte, 6<<20))})
	require.Equal(t, http.StatusBadRequest, client.StatusOf(err))
	assert.Contains(t, err.Error(), "File is too large")

	_, err = c.CreatePortfolio(ctx, token, form, &client.Image{Filename: "readme.txt", Data: strings.NewReader("text")})
	require.Equal(t, http.StatusBadRequest, client.StatusOf(err))
	assert.Contains(t, err.Error(), "Only image files are allowed!")

	png := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, (1<<20)/4)
	item, err := c.CreatePortfolio(ctx, token, form, &client.Image{Filename: "ok.png", Data: bytes.NewReader(png)})
	require.NoError(t, err)
	require.NotEmpty(t, item.Image)

	body, err := c.Fetch(ctx, item.Image)
	require.NoError(t, err)
	assert.Equal(t, png, body)

	require.NoError(t, c.DeletePortfolio(ctx, token, item.ID))
	_, err = c.Fetch(ctx, item.Image)
	assert.Equal(t, http.StatusNotFound, client.StatusOf(err))
}

func TestContactFlow(t *testing.T) {
	c, token := newSite(t)
	ctx := context.Background()

	receipt, err := c.SubmitContact(ctx, client.ContactForm{Name: "Vis", Email: "v@example.com", Subject: "Hi", Message: "Hello there"})
	require.NoError(t, err)
	assert.Equal(t, "Message sent successfully", receipt)

	_, err = c.SubmitContact(ctx, client.ContactForm{Name: "Vis"})
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))

	msgs, err := c.ListMessages(ctx, token)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	read, err := c.MarkRead(ctx, token, msgs[0].ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NoError(t, c.DeleteMessage(ctx, token, msgs[0].ID))
	_, err = c.GetMessage(ctx, token, msgs[0].ID)
	assert.Equal(t, http.StatusNotFound, client.StatusOf(err))
}

func TestConnectMongoStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongo(ctx, config.MongoDBConfig{URI: "mongodb://127.0.0.1:1", Database: "portfolio", Timeout: time.Second})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDialMongoRejectsBadURI(t *testing.T) {
	_, err := dialMongo(context.Background(), config.MongoDBConfig{URI: "not-a-mongo-uri", Timeout: time.Second})
	require.Error(t, err)
	require.Contains(t, err.Error(), "mongo connect")
}
