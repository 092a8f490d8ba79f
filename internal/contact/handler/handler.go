package handler

import (
	"net/http"

	"github.com/folio-site/folio/backend/internal/contact/service"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/gin-gonic/gin"
)

// RegisterContactRoutes mounts the contact endpoints. submitLimit guards the
// public POST and may be nil.
func RegisterContactRoutes(r gin.IRouter, svc *service.Service, auth, submitLimit gin.HandlerFunc) {
	g := r.Group("/api/contact")

	submit := []gin.HandlerFunc{}
	if submitLimit != nil {
		submit = append(submit, submitLimit)
	}
	submit = append(submit, func(c *gin.Context) {
		var in service.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			apierror.Respond(c, apierror.New(apierror.ErrValidation, "Invalid request body"))
			return
		}
		if _, err := svc.Submit(c.Request.Context(), in); err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully"})
	})
	g.POST("", submit...)

	admin := g.Group("", auth)
	admin.GET("", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})
	admin.GET("/:id", func(c *gin.Context) {
		m, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	})
	admin.PUT("/:id/read", func(c *gin.Context) {
		m, err := svc.MarkRead(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	})
	admin.DELETE("/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	})
}
