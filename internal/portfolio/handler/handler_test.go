package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/internal/portfolio/repository"
	"github.com/folio-site/folio/backend/internal/portfolio/service"
	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func fakeAuth(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer ok" {
		apierror.Respond(c, apierror.New(apierror.ErrUnauthenticated, "No token, authorization denied"))
		return
	}
	c.Next()
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	g := gin.New()
	RegisterPortfolioRoutes(g, service.New(repository.NewMemoryRepo(), st), fakeAuth)
	return g
}

type filePart struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("image", file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func do(g *gin.Engine, method, path string, body *bytes.Buffer, ctype string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", ctype)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer ok")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decodeItem(t *testing.T, w *httptest.ResponseRecorder) models.PortfolioItem {
	t.Helper()
	var it models.PortfolioItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &it))
	return it
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m["message"]
}

func TestPortfolioHandler_CRUD(t *testing.T) {
	g := newRouter(t)

	body, ct := multipartBody(t, map[string]string{"title": "Site", "description": "A site", "type": "web"}, nil)
	require.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/api/portfolio", body, ct, false).Code)

	body, ct = multipartBody(t, map[string]string{"title": "Site", "description": "A site", "type": "web", "isFeatured": "true", "link": "https://example.com"}, nil)
	w := do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeItem(t, w)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsFeatured)

	w = do(g, http.MethodGet, "/api/portfolio/"+created.ID, nil, "", false)
	require.Equal(t, http.StatusOK, w.Code)

	// only the description is sent; everything else is kept
	body, ct = multipartBody(t, map[string]string{"description": "Updated"}, nil)
	w = do(g, http.MethodPut, "/api/portfolio/"+created.ID, body, ct, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upd := decodeItem(t, w)
	require.Equal(t, "Site", upd.Title)
	require.Equal(t, "Updated", upd.Description)
	require.True(t, upd.IsFeatured)

	body, ct = multipartBody(t, map[string]string{"isFeatured": "yes"}, nil)
	w = do(g, http.MethodPut, "/api/portfolio/"+created.ID, body, ct, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decodeItem(t, w).IsFeatured)

	w = do(g, http.MethodDelete, "/api/portfolio/"+created.ID, nil, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Portfolio item deleted", message(t, w))

	w = do(g, http.MethodGet, "/api/portfolio/"+created.ID, nil, "", false)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Portfolio item not found", message(t, w))
}

func TestPortfolioHandler_Validation(t *testing.T) {
	g := newRouter(t)
	body, ct := multipartBody(t, map[string]string{"title": "x", "description": "y", "type": "game"}, nil)
	w := do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body, ct = multipartBody(t, map[string]string{"description": "y", "type": "web"}, nil)
	w = do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "title is required", message(t, w))

	body, ct = multipartBody(t, map[string]string{"title": "   ", "description": "y", "type": "web"}, nil)
	w = do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "title is required", message(t, w))
}

func TestPortfolioHandler_Uploads(t *testing.T) {
	g := newRouter(t)
	fields := map[string]string{"title": "Pic", "description": "d", "type": "design"}

	body, ct := multipartBody(t, fields, &filePart{name: "huge.png", data: make([]byte, 6<<20)})
	w := do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "File is too large. Maximum size is 5MB.", message(t, w))

	body, ct = multipartBody(t, fields, &filePart{name: "notes.txt", data: []byte("hello")})
	w = do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Only image files are allowed!", message(t, w))

	body, ct = multipartBody(t, fields, &filePart{name: "ok.png", data: make([]byte, 1<<20)})
	w = do(g, http.MethodPost, "/api/portfolio", body, ct, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Contains(t, decodeItem(t, w).Image, "/uploads/portfolio/")

	w = do(g, http.MethodGet, "/api/portfolio", nil, "", false)
	var list []models.PortfolioItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestPortfolioHandler_ListQuery(t *testing.T) {
	g := newRouter(t)
	for _, f := range []map[string]string{
		{"title": "Beta", "description": "web thing", "type": "web"},
		{"title": "Alpha", "description": "an app", "type": "mobile"},
		{"title": "Gamma", "description": "Logo FOO", "type": "design"},
	} {
		body, ct := multipartBody(t, f, nil)
		require.Equal(t, http.StatusCreated, do(g, http.MethodPost, "/api/portfolio", body, ct, true).Code)
	}
	list := func(q string) []string {
		w := do(g, http.MethodGet, "/api/portfolio"+q, nil, "", false)
		require.Equal(t, http.StatusOK, w.Code)
		var items []models.PortfolioItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		out := []string{}
		for _, it := range items {
			out = append(out, it.Title)
		}
		return out
	}
	require.Equal(t, []string{"Gamma", "Alpha", "Beta"}, list(""))
	require.Equal(t, []string{"Gamma", "Alpha", "Beta"}, list("?type=all"))
	require.Equal(t, []string{"Alpha"}, list("?type=mobile"))
	require.Equal(t, []string{"Gamma"}, list("?search=foo"))
	require.Equal(t, []string{"Alpha", "Beta", "Gamma"}, list("?sortBy=title"))
	require.Equal(t, []string{}, list("?type=web&search=app"))
}
