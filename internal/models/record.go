package models

import "time"

// LogRecord is one persisted log entry. Records are write-once: the category is fixed at
// creation and the store assigns ID and CreatedAt.
type LogRecord struct {
	ID        int64             `json:"id" example:"1042"`
	Title     string            `json:"title" example:"Success: Update Contact 003xx000004TmiQ"`
	Message   string            `json:"message" example:"Contact was updated from user 17"`
	ParentID  int64             `json:"parent_id" example:"17"`
	Category  string            `json:"category" example:"salesforce"`
	Meta      map[string]string `json:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at" example:"2025-11-05T10:30:00Z"`
} // @name LogRecord

// MetaClause matches records whose meta value for Key equals Value.
type MetaClause struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MetaFilter is an extra structured filter passed through to the store unchanged.
// All clauses must match.
type MetaFilter []MetaClause

// RecordQuery selects records by parent object and category. An empty Category matches
// every category. PageSize <= 0 means unbounded (used for counting).
type RecordQuery struct {
	ParentID int64
	Category string
	Page     int
	PageSize int
	Meta     MetaFilter
}

// Offset returns the row offset for the query's page.
func (q RecordQuery) Offset() int {
	if q.Page < 1 || q.PageSize <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// PruneFilter restricts which records the retention job deletes.
type PruneFilter struct {
	Category string    `json:"category,omitempty" example:"salesforce"`
	Before   time.Time `json:"before"`
	Limit    int       `json:"limit" example:"100"`
}

// LogEventRequest is the body accepted by the event ingest endpoint.
type LogEventRequest struct {
	Title    string `json:"title" example:"Error: Create Contact"`
	Message  string `json:"message" example:"REQUIRED_FIELD_MISSING: LastName"`
	Trigger  int    `json:"trigger" example:"0"`
	ParentID int64  `json:"parent_id" example:"17"`
	Status   string `json:"status" example:"error"`
} // @name LogEventRequest

// LogEventResponse reports whether an ingested event produced a record.
type LogEventResponse struct {
	Logged bool  `json:"logged" example:"true"`
	ID     int64 `json:"id,omitempty" example:"1042"`
} // @name LogEventResponse

// LogListResponse is a page of records for one parent object.
type LogListResponse struct {
	Logs       []LogRecord `json:"logs"`
	Pagination Pagination  `json:"pagination"`
} // @name LogListResponse

// LogCountResponse carries a record count.
type LogCountResponse struct {
	ObjectID int64  `json:"object_id" example:"17"`
	Category string `json:"category" example:"salesforce"`
	Count    int64  `json:"count" example:"12"`
} // @name LogCountResponse

// Pagination represents pagination metadata.
type Pagination struct {
	CurrentPage  int   `json:"current_page" example:"1"`
	PageSize     int   `json:"page_size" example:"10"`
	TotalPages   int   `json:"total_pages" example:"5"`
	TotalRecords int64 `json:"total_records" example:"42"`
} // @name Pagination

// ListLogsQuery holds the query parameters of the log listing endpoint.
type ListLogsQuery struct {
	ObjectID int64  `form:"object_id" binding:"min=0"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

// CountLogsQuery holds the query parameters of the log count endpoint. MetaKey and
// MetaValue form an optional single meta clause.
type CountLogsQuery struct {
	ObjectID  int64  `form:"object_id" binding:"min=0"`
	Category  string `form:"category"`
	MetaKey   string `form:"meta_key"`
	MetaValue string `form:"meta_value"`
}
