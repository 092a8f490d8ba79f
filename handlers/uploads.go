package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/gin-gonic/gin"
)

// RegisterUploads serves stored images under /uploads/*.
func RegisterUploads(r gin.IRouter, store storage.ObjectStorage) {
	r.GET(storage.PublicPrefix+"*key", func(c *gin.Context) {
		key, err := storage.CleanKey(c.Param("key"))
		if err != nil {
			apierror.Respond(c, apierror.New(apierror.ErrNotFound, "File not found"))
			return
		}
		rc, err := store.Open(c.Request.Context(), key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			apierror.Respond(c, apierror.New(apierror.ErrNotFound, "File not found"))
			return
		}
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		defer rc.Close()
		ctype := mime.TypeByExtension(path.Ext(key))
		if ctype == "" {
			ctype = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, -1, ctype, rc, map[string]string{"Cache-Control": "public, max-age=86400"})
	})
}
