package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-scanner/model"
	"github.com/gcbaptista/go-ats-scanner/services"
)

const (
	serviceName = "go-ats-scanner"

	resumeFormField         = "resume"
	jobDescriptionFormField = "job_description"
)

// API holds dependencies for API handlers, primarily the analysis engine.
type API struct {
	engine services.AnalysisEngine
	logger *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.AnalysisEngine, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		engine: engine,
		logger: logger,
	}
}

// SetupRoutes defines all the API routes for the scanner.
func SetupRoutes(router *gin.Engine, engine services.AnalysisEngine, logger *zap.Logger) {
	apiHandler := NewAPI(engine, logger)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	analyzeRoutes := router.Group("/analyze")
	{
		analyzeRoutes.POST("", apiHandler.AnalyzeHandler)             // Compare raw resume text with a job description
		analyzeRoutes.POST("/upload", apiHandler.AnalyzeUploadHandler) // Compare an uploaded resume file with a job description
	}

	router.POST("/normalize", apiHandler.NormalizeHandler)
}

// AnalysisResponse is the body returned by the analyze endpoints.
// MissingKeywords is cut to the display limit; MissingCount is always the full gap size.
type AnalysisResponse struct {
	AnalysisID      string        `json:"analysis_id"`
	Similarity      float64       `json:"similarity"`
	Verdict         model.Verdict `json:"verdict"`
	Message         string        `json:"message"`
	MissingKeywords []string      `json:"missing_keywords"`
	MissingCount    int           `json:"missing_count"`
	Truncated       bool          `json:"truncated"`
	ResumeTokens    int           `json:"resume_tokens"`
	JobTokens       int           `json:"job_description_tokens"`
	Took            int64         `json:"took"` // in milliseconds
}

// NormalizeRequest is the body accepted by the normalize endpoint.
type NormalizeRequest struct {
	Text string `json:"text"`
}

// NormalizeResponse lists the tokens produced for a text.
type NormalizeResponse struct {
	Tokens []string `json:"tokens"`
	Count  int      `json:"count"`
}

// NewAnalysisResponse converts a match result, keeping at most limit missing keywords.
func NewAnalysisResponse(result model.MatchResult, limit int) AnalysisResponse {
	missing := result.TopMissing(limit)
	return AnalysisResponse{
		AnalysisID:      result.ID.String(),
		Similarity:      result.Similarity,
		Verdict:         result.Verdict,
		Message:         result.Verdict.Message(),
		MissingKeywords: missing,
		MissingCount:    result.MissingCount,
		Truncated:       len(missing) < result.MissingCount,
		ResumeTokens:    result.ResumeTokens,
		JobTokens:       result.JobTokens,
		Took:            result.Took,
	}
}

// AnalyzeHandler handles the request to compare resume text with a job description.
// Request Body: services.AnalysisRequest
// Query: limit (optional) caps the returned missing keywords, 0 returns all.
func (api *API) AnalyzeHandler(c *gin.Context) {
	limit, limitResult := ParseLimit(c.Query("limit"), api.engine.Settings().DisplayLimit)
	if limitResult.HasErrors() {
		SendStructuredValidationError(c, limitResult)
		return
	}

	var req services.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBindError(c, err)
		return
	}

	if validation := ValidateAnalysisRequest(&req); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	result, err := api.engine.AnalyzeText(c.Request.Context(), req.ResumeText, req.JobDescription, services.SourceText)
	if err != nil {
		SendAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAnalysisResponse(result, limit))
}

// AnalyzeUploadHandler handles a multipart upload with a resume file and a job description field.
func (api *API) AnalyzeUploadHandler(c *gin.Context) {
	limit, limitResult := ParseLimit(c.Query("limit"), api.engine.Settings().DisplayLimit)
	if limitResult.HasErrors() {
		SendStructuredValidationError(c, limitResult)
		return
	}

	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		if tooLarge, ok := asRequestTooLarge(err); ok {
			SendRequestTooLargeError(c, tooLarge.Limit)
			return
		}
		SendInvalidRequestError(c, fmt.Sprintf("Multipart field '%s' with the resume file is required", resumeFormField))
		return
	}

	jobDescription := c.PostForm(jobDescriptionFormField)
	if validation := ValidateText(jobDescriptionFormField, jobDescription); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		SendInternalError(c, "open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		SendInternalError(c, "read uploaded file", err)
		return
	}

	document := services.DocumentFile{
		Filename: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	}

	text, err := api.engine.ExtractText(document)
	if err != nil {
		api.logger.Warn("resume extraction failed",
			zap.String("filename", document.Filename),
			zap.String("mime_type", document.MIMEType),
			zap.Error(err))
		SendAnalysisError(c, &extractionError{err: err})
		return
	}

	result, err := api.engine.AnalyzeText(c.Request.Context(), text, jobDescription, services.SourceUpload)
	if err != nil {
		SendAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAnalysisResponse(result, limit))
}

// NormalizeHandler returns the tokens the gap analysis sees for a text.
// Request Body: NormalizeRequest
func (api *API) NormalizeHandler(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBindError(c, err)
		return
	}

	tokens := api.engine.Normalize(req.Text)
	c.JSON(http.StatusOK, NormalizeResponse{
		Tokens: tokens,
		Count:  len(tokens),
	})
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Dashboard())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
