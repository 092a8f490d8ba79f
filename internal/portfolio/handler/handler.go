package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/internal/portfolio/repository"
	"github.com/folio-site/folio/backend/internal/portfolio/service"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/gin-gonic/gin"
)

// maxRequestBody bounds the whole multipart request; the image itself is
// checked against service.MaxImageSize.
const maxRequestBody = 16 << 20

// RegisterPortfolioRoutes mounts the portfolio endpoints. Reads are public,
// writes go through auth.
func RegisterPortfolioRoutes(r gin.IRouter, svc *service.Service, auth gin.HandlerFunc) {
	h := &portfolioHandler{svc: svc}
	g := r.Group("/api/portfolio")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", auth, h.create)
	g.PUT("/:id", auth, h.update)
	g.DELETE("/:id", auth, h.remove)
}

type portfolioHandler struct {
	svc *service.Service
}

func (h *portfolioHandler) list(c *gin.Context) {
	opts := repository.ListOptions{
		Search:       strings.TrimSpace(c.Query("search")),
		FeaturedOnly: c.Query("featured") == "true",
	}
	if t := c.Query("type"); t != "" && t != "all" {
		opts.Type = models.PortfolioType(t)
	}
	if c.Query("sortBy") == string(repository.SortByTitle) {
		opts.SortBy = repository.SortByTitle
	}
	items, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *portfolioHandler) get(c *gin.Context) {
	it, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *portfolioHandler) create(c *gin.Context) {
	if err := parseForm(c); err != nil {
		apierror.Respond(c, err)
		return
	}
	in := service.CreateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Type:        models.PortfolioType(c.PostForm("type")),
		Link:        c.PostForm("link"),
		IsFeatured:  c.PostForm("isFeatured") == "true",
	}
	file, cleanup, err := formImage(c)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	defer cleanup()
	it, err := h.svc.Create(c.Request.Context(), in, file)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h *portfolioHandler) update(c *gin.Context) {
	if err := parseForm(c); err != nil {
		apierror.Respond(c, err)
		return
	}
	var in service.UpdateInput
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("link"); ok {
		in.Link = &v
	}
	if v, ok := c.GetPostForm("type"); ok {
		t := models.PortfolioType(v)
		in.Type = &t
	}
	if v, ok := c.GetPostForm("isFeatured"); ok {
		b := v == "true"
		in.IsFeatured = &b
	}
	file, cleanup, err := formImage(c)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	defer cleanup()
	it, err := h.svc.Update(c.Request.Context(), c.Param("id"), in, file)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *portfolioHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item deleted"})
}

func parseForm(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
	err := c.Request.ParseMultipartForm(8 << 20)
	var tooBig *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, http.ErrNotMultipart):
		return nil
	case errors.As(err, &tooBig):
		return apierror.New(apierror.ErrUpload, "File is too large. Maximum size is 5MB.")
	default:
		return apierror.New(apierror.ErrValidation, "Malformed form data")
	}
}

// formImage returns the optional "image" part. cleanup is always non-nil.
func formImage(c *gin.Context) (*service.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, apierror.New(apierror.ErrValidation, "Malformed form data")
	}
	up := &service.Upload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}
	// reject before touching the body
	if err := service.CheckUpload(up); err != nil {
		return nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	up.Body = f
	return up, func() { f.Close() }, nil
}
