package domain

import (
	"fmt"
	"time"
)

// Record is a single row returned by a stored procedure, keyed by column name.
type Record map[string]any

// Entity is a reporting entity that can be fetched per user and bulk updated.
type Entity string

const (
	EntityOKRs            Entity = "okrs"
	EntityCommentaries    Entity = "commentaries"
	EntityPriorities      Entity = "priorities"
	EntityTrackerStatuses Entity = "tracker-statuses"
	EntityOverdues        Entity = "overdues"
)

// EntitySpec binds an entity to the database objects behind it.
type EntitySpec struct {
	// FetchProc returns the entity rows for one user.
	FetchProc string
	// Table is passed to the bulk update procedure.
	Table string
	// ItemName is used in user facing messages.
	ItemName string
}

var entitySpecs = map[Entity]EntitySpec{
	EntityOKRs:            {FetchProc: "usp_get_okr_details", Table: "okr_details", ItemName: "OKRs"},
	EntityCommentaries:    {FetchProc: "usp_get_commentary_details", Table: "commentary_details", ItemName: "KJ OPS"},
	EntityPriorities:      {FetchProc: "usp_get_priorities", Table: "priorities", ItemName: "Priorities"},
	EntityTrackerStatuses: {FetchProc: "usp_get_ops_tracker_statuses", Table: "ops_tracker_statuses", ItemName: "Tracker Statuses"},
	EntityOverdues:        {FetchProc: "usp_get_ops_overdues", Table: "ops_overdues", ItemName: "Overdues"},
}

// Entities lists every reporting entity in route order.
func Entities() []Entity {
	return []Entity{
		EntityOKRs,
		EntityCommentaries,
		EntityPriorities,
		EntityTrackerStatuses,
		EntityOverdues,
	}
}

// Spec returns the database binding for e.
func (e Entity) Spec() (EntitySpec, error) {
	spec, ok := entitySpecs[e]
	if !ok {
		return EntitySpec{}, NewValidationError("entity", fmt.Sprintf("unknown reporting entity %q", string(e)))
	}
	return spec, nil
}

// LoginCode is what the database returns when a one-time code is generated.
type LoginCode struct {
	UserID          int64
	IsActive        bool
	Code            string
	MinutesToExpire int
}

// LoginUser is what the database returns when a one-time code is verified.
type LoginUser struct {
	UserID            int64
	FirstName         string
	IsActive          bool
	IsAdmin           bool
	LoginCode         string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	IsPeriodClosed    bool
	IsPrioritiesMonth bool
}

// Permission grants access to a module for a business unit.
type Permission struct {
	ModuleName string `json:"module_name"`
	BUName     string `json:"bu_name"`
	AccessType string `json:"access_type"`
}

// Session is the result of a successful login.
type Session struct {
	UserID            int64
	FirstName         string
	IsAdmin           bool
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	IsPeriodClosed    bool
	IsPrioritiesMonth bool
	Permissions       []Permission
}

// BulkUpdateResult summarises a bulk update.
type BulkUpdateResult struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	AffectedRows int64  `json:"affected_rows"`
}

// PeriodStatus is the row returned by the submission period procedures.
// It always carries a "status" column.
type PeriodStatus Record

// LogEntry is an application log line submitted by the client.
type LogEntry struct {
	Level    string
	Message  string
	Module   string
	UserID   int64
	ClientIP string
}
