package apiservice

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

type ServiceStatus string

const (
	ServiceStatusRunning    ServiceStatus = "running"
	ServiceStatusFatalError ServiceStatus = "fatal_error"
)

// TableStage tracks how far one destination table has progressed through a
// sync pass.
type TableStage string

const (
	TableStagePending    TableStage = "pending"
	TableStageExtracting TableStage = "extracting"
	TableStageFinished   TableStage = "finished"
)

type APIInfo struct {
	stages             map[string]TableStage
	errorMessages      map[string]string
	globalStatus       ServiceStatus
	globalErrorMessage string
	mu                 sync.Mutex
}

func NewAPIInfo() *APIInfo {
	return &APIInfo{
		stages:             make(map[string]TableStage),
		errorMessages:      make(map[string]string),
		globalStatus:       ServiceStatusRunning,
		globalErrorMessage: "",
	}
}

func (s *APIInfo) registerRouter(router *gin.Engine) {
	router.GET("/info", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.globalStatus == ServiceStatusFatalError {
			c.JSON(http.StatusOK, gin.H{
				"status":        s.globalStatus,
				"error_message": s.globalErrorMessage,
			})
		} else {
			c.JSON(http.StatusOK, gin.H{
				"status":        s.globalStatus,
				"stages":        s.stages,
				"error_message": s.errorMessages,
			})
		}
	})
}

// SetTableStage records the current stage of one table.
func (s *APIInfo) SetTableStage(table string, stage TableStage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages[table] = stage
}

// TableStage reports the recorded stage of one table.
func (s *APIInfo) TableStage(table string) TableStage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stage, ok := s.stages[table]; ok {
		return stage
	}
	return TableStagePending
}

// SetTableFatalError marks one table as failed. The first error wins.
func (s *APIInfo) SetTableFatalError(table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.errorMessages[table]; ok {
		log.Warn("Ignored new fatal errors", zap.Error(err))
		return
	}
	s.errorMessages[table] = err.Error()
}

// SetGlobalFatalError marks the whole service as failed. The first error wins.
func (s *APIInfo) SetGlobalFatalError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.globalStatus == ServiceStatusFatalError {
		log.Warn("Ignored new fatal errors", zap.Error(err))
		return
	}
	s.globalStatus = ServiceStatusFatalError
	s.globalErrorMessage = err.Error()
}
