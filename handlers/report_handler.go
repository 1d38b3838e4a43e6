package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"clarion-backend/models"
	"clarion-backend/report"
	"clarion-backend/repository"
	"clarion-backend/service"
	"clarion-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles HTTP requests for report generation and retrieval
type ReportHandler struct {
	analysis   *service.AnalysisService
	reportRepo *repository.ReportRepository
	storage    storage.Storage
}

// NewReportHandler creates a new report handler
func NewReportHandler(analysis *service.AnalysisService, reportRepo *repository.ReportRepository, store storage.Storage) *ReportHandler {
	return &ReportHandler{
		analysis:   analysis,
		reportRepo: reportRepo,
		storage:    store,
	}
}

// CreateReportRequest is the POST /api/reports request body
type CreateReportRequest struct {
	Text        string `json:"text"`
	Domain      string `json:"domain"`
	SourceURL   string `json:"source_url"`
	SourceLabel string `json:"source_label"`
}

// CreateReport handles POST /api/reports: it analyzes the text, renders the
// HTML report, stores the artifact, and records it.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Request body must be JSON with a text field",
			},
		})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TEXT",
				"message": "Text is required",
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

	html, err := report.RenderHTML(result, report.Options{
		SourceURL:   req.SourceURL,
		SourceLabel: req.SourceLabel,
		InputText:   req.Text,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RENDER_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	reportID := uuid.New()
	storagePath, err := h.storage.Upload(c.Request.Context(), reportID, "report.html", strings.NewReader(html))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	hash := sha256.Sum256([]byte(req.Text))
	record := &models.Report{
		ContentHash: hex.EncodeToString(hash[:]),
		Domain:      req.Domain,
		Mode:        result.VerificationMode,
		StoragePath: storagePath,
	}
	if h.reportRepo != nil {
		if err := h.reportRepo.Create(c.Request.Context(), record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": err.Error(),
				},
			})
			return
		}
	} else {
		record.ID = reportID
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"report":  record,
		"result":  result,
	})
}

// GetReport handles GET /api/reports/:id, serving the stored HTML artifact.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REPORT_ID",
				"message": "Invalid report id format",
			},
		})
		return
	}
	if h.reportRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORTS_UNAVAILABLE",
				"message": "Report lookup requires a database",
			},
		})
		return
	}

	record, err := h.reportRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORT_NOT_FOUND",
				"message": "Report not found",
			},
		})
		return
	}

	body, err := h.storage.Download(c.Request.Context(), record.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer body.Close()

	html, err := io.ReadAll(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	if h.reportRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPORTS_UNAVAILABLE",
				"message": "Report lookup requires a database",
			},
		})
		return
	}
	reports, err := h.reportRepo.ListRecent(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reports": reports,
	})
}
