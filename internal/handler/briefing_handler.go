package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketbrief/internal/briefing"
	"marketbrief/internal/model"
)

type BriefingService interface {
	Generate(ctx context.Context, snap *model.Snapshot) (model.Record, error)
}

type BriefingHandler struct {
	pipeline BriefingService
}

func NewBriefingHandler(pipeline BriefingService) *BriefingHandler {
	return &BriefingHandler{pipeline: pipeline}
}

// CreateBriefing validates the posted snapshot and runs the pipeline.
// Diagnostics go to the log; clients only see a generic failure notice.
func (h *BriefingHandler) CreateBriefing(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := briefing.ValidateSnapshotJSON(raw); err != nil {
		slog.Error("snapshot rejected", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid snapshot"})
		return
	}

	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		slog.Error("snapshot decode failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	rec, err := h.pipeline.Generate(c.Request.Context(), &snap)
	if err != nil {
		slog.Error("briefing generation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Briefing generation failed"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *BriefingHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
