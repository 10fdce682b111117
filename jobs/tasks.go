package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCoaIntegrityScan is the task type for the chart-of-accounts
	// integrity scan.
	TaskCoaIntegrityScan = "coa:integrity_scan"
)

// CoaIntegrityScanPayload parameterizes an integrity scan run.
type CoaIntegrityScanPayload struct {
	// Scope limits the scan: "all" or "active".
	Scope string `json:"scope"`
}

// NewCoaIntegrityScanTask constructs an Asynq task for the integrity scan.
func NewCoaIntegrityScanTask(scope string) (*asynq.Task, error) {
	data, err := json.Marshal(CoaIntegrityScanPayload{Scope: scope})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCoaIntegrityScan, data), nil
}
