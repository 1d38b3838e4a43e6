package handlers

import (
	"errors"
	"net/http"

	"clarion-backend/detect"
	"clarion-backend/models"
	"clarion-backend/service"

	"github.com/gin-gonic/gin"
)

// AnalyzeHandler handles HTTP requests for text analysis
type AnalyzeHandler struct {
	analysis *service.AnalysisService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysis *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysis}
}

// AnalyzeRequest is the POST /api/analyze request body
type AnalyzeRequest struct {
	Text   string `json:"text"`
	Domain string `json:"domain"`
}

// styleSignals are the rule-based detectors run on the raw text, reported
// alongside the verifier-derived result for comparison.
type styleSignals struct {
	Misinformation    models.MisinformationResult    `json:"misinformation"`
	SocialEngineering models.SocialEngineeringResult `json:"social_engineering"`
}

// Analyze handles POST /api/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Request body must be JSON with text and domain fields",
			},
		})
		return
	}
	if req.Domain == "" {
		req.Domain = service.DomainNormalNews
	}

	result, err := h.analysis.Analyze(c.Request.Context(), service.AnalysisRequest{
		Text:   req.Text,
		Domain: req.Domain,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownDomain) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_DOMAIN",
					"message": "domain must be fact_check, normal_news, or scam_phishing",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
		"style_signals": styleSignals{
			Misinformation:    detect.Misinformation(req.Text),
			SocialEngineering: detect.SocialEngineering(req.Text),
		},
	})
}
