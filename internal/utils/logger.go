package utils

import (
	"strings"

	"transportes-backend/pkg/logger"
)

var eventLog logger.Logger = logger.NewLogger()

// LogEvent writes one structured line per domain event. Avoid logging
// sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	eventLog.Info(message,
		"module", strings.ToLower(strings.TrimSpace(module)),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	)
}
