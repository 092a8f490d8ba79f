package handler

import (
	"net/http"

	"github.com/folio-site/folio/backend/internal/achievements/service"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/gin-gonic/gin"
)

func RegisterAchievementRoutes(r gin.IRouter, svc *service.Service, auth gin.HandlerFunc) {
	g := r.Group("/api/achievements")

	g.GET("", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	g.GET("/:id", func(c *gin.Context) {
		a, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	})

	g.POST("", auth, func(c *gin.Context) {
		var in service.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			apierror.Respond(c, apierror.New(apierror.ErrValidation, "Invalid request body"))
			return
		}
		a, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	})

	g.PUT("/:id", auth, func(c *gin.Context) {
		var in service.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			apierror.Respond(c, apierror.New(apierror.ErrValidation, "Invalid request body"))
			return
		}
		a, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	})

	g.DELETE("/:id", auth, func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Achievement deleted"})
	})
}
