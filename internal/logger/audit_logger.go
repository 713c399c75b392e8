// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRunConfiguration records the effective parameters of a run.
func (al *AuditLogger) LogRunConfiguration(runID, configPath string, seed int64, parameters map[string]interface{}) {
	al.WithFields(logrus.Fields{
		"run_id":      runID,
		"config_path": configPath,
		"seed":        seed,
		"parameters":  parameters,
	}).Info("Run configuration recorded")
}

// LogPickOverride records a user-chosen pick that differs from the favourite.
func (al *AuditLogger) LogPickOverride(runID string, matchup int, picked, favourite string) {
	al.WithFields(logrus.Fields{
		"run_id":    runID,
		"matchup":   matchup,
		"picked":    picked,
		"favourite": favourite,
	}).Info("Pick override recorded")
}

// LogReportExported records an exported report.
func (al *AuditLogger) LogReportExported(runID, format, path string, results int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"run_id":    runID,
		"format":    format,
		"path":      path,
		"results":   results,
		"timestamp": timestamp.Unix(),
	}).Info("Report exported")
}
