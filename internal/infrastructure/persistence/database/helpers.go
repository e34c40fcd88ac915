package database

import (
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// CheckAndLogSlowQuery logs the query on the database channel when it took longer than threshold.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, start time.Time, threshold time.Duration) {
	if logger == nil {
		return
	}
	logger.LogSlowQuery(query, time.Since(start), threshold)
}
