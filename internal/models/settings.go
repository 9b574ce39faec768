package models

import "time"

// LoggingSettings is the set of options that drive logging and pruning.
type LoggingSettings struct {
	LoggingEnable string   `json:"logging_enable" example:"1"`
	StatusesToLog []string `json:"statuses_to_log" example:"error,success"`
	TriggersToLog []string `json:"triggers_to_log" example:"1,4"`
	PruneLogs     string   `json:"prune_logs" example:"1"`
	LogsHowOld    string   `json:"logs_how_old" example:"30 days"`
} // @name LoggingSettings

// Option is one stored key/value setting.
type Option struct {
	Name      string
	Value     string
	UpdatedAt time.Time
}

// RetentionPolicyResponse describes the pruning decision the retention job would make now.
type RetentionPolicyResponse struct {
	Enabled  bool        `json:"enabled" example:"true"`
	Age      string      `json:"age" example:"30 days ago"`
	Cutoff   *time.Time  `json:"cutoff,omitempty" example:"2025-10-06T10:30:00Z"`
	Filter   PruneFilter `json:"filter"`
	Schedule string      `json:"schedule" example:"@hourly"`
	NextRun  *time.Time  `json:"next_run,omitempty" example:"2025-11-05T11:00:00Z"`
} // @name RetentionPolicyResponse
