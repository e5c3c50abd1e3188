// Package server exposes one form controller over a small REST API and
// mounts the A2A agent next to it.
package server

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/a2a"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/controller"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/logging"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type optionsResponse struct {
	Genders     []models.GenderOption `json:"genders"`
	Likelihoods []string              `json:"likelihoods"`
	Criteria    []criteriaOption      `json:"criteria"`
}

type criteriaOption struct {
	Key   models.CriteriaKey `json:"key"`
	Title string             `json:"title"`
}

type formHandler struct {
	ctrl   *controller.Controller
	logger *zap.Logger
}

// NewRouter wires every HTTP endpoint of the service.
func NewRouter(ctrl *controller.Controller, agentHandler *a2a.A2AHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &formHandler{ctrl: ctrl, logger: logger.Named("form")}

	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logger.Named("http")))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// A2A
	router.GET("/.well-known/agent.json", agentHandler.ServeAgentCard)
	router.POST("/a2a/analyzer", agentHandler.HandleAnalyzer)

	api := router.Group("/api")
	api.GET("/options", h.options)
	api.GET("/form", h.form)
	api.PATCH("/form/audience", h.setAudience)
	api.PATCH("/form/content", h.setContent)
	api.POST("/form/submit", h.submit)

	return router
}

func (h *formHandler) options(c *gin.Context) {
	resp := optionsResponse{
		Genders:     models.GenderOptions,
		Likelihoods: models.LikelihoodLabels,
	}
	for _, key := range models.CriteriaKeys {
		resp.Criteria = append(resp.Criteria, criteriaOption{Key: key, Title: key.Title()})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *formHandler) form(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

func (h *formHandler) setAudience(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ctrl.SetAudienceField(models.AudienceField(req.Field), req.Value); err != nil {
		h.logger.Debug("rejected audience edit", zap.String("field", req.Field), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

func (h *formHandler) setContent(c *gin.Context) {
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ctrl.SetContentField(models.ContentField(req.Field), req.Value); err != nil {
		h.logger.Debug("rejected content edit", zap.String("field", req.Field), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

// submit mirrors the form button: disabled while a request is in flight.
func (h *formHandler) submit(c *gin.Context) {
	sub, err := h.ctrl.SubmitIfIdle(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, controller.ErrBusy):
			status = http.StatusConflict
		case errors.Is(err, validator.ErrValidation):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, h.ctrl.Snapshot())
		return
	}

	if c.Query("wait") != "true" {
		c.JSON(http.StatusAccepted, h.ctrl.Snapshot())
		return
	}

	if _, err := sub.Wait(c.Request.Context()); err != nil {
		if c.Request.Context().Err() != nil {
			// client went away; the request keeps running
			return
		}
		c.JSON(http.StatusBadGateway, h.ctrl.Snapshot())
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Snapshot())
}
