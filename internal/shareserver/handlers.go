package shareserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/pathway"
	"github.com/abhisek/skillnav/internal/share"
)

const maxBodyBytes = 1 << 20

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getPathway(c *gin.Context) {
	id := c.Param("id")

	p, err := s.pathways.FetchPublic(c.Request.Context(), id)
	switch {
	case errors.Is(err, share.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "pathway not found"})
		return
	case err != nil:
		s.logger.Error("fetch shared pathway", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load pathway"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) publishPathway(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}
	if len(body) > maxBodyBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "pathway too large"})
		return
	}

	var p pathway.Pathway
	if err := json.Unmarshal(body, &p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.pathways.Publish(c.Request.Context(), &p)
	if err != nil {
		s.logger.Error("publish pathway", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not publish pathway"})
		return
	}
	s.metrics.published.Inc()
	s.logger.Info("pathway published", zap.String("id", id))
	c.JSON(http.StatusCreated, share.PublishResponse{ID: id})
}
