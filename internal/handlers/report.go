package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/crmcore-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (rh *ReportHandler) Summary(c *gin.Context) {
	summary, err := rh.reportService.Summary(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}
