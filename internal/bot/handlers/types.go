package handlers

import (
	"github.com/mehrnazbaharan/diabetes-companion/internal/domain"
	"github.com/mehrnazbaharan/diabetes-companion/internal/services"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Users   domain.UserService
	Logbook domain.LogbookService
	Metrics domain.MetricsService
	AI      domain.AIService
	Backup  *services.BackupService
	Reports *services.ReportService
}
