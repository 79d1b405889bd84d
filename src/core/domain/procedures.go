package domain

// Stored procedures called by the application. Entity fetch procedures live
// in the entity catalogue.
const (
	ProcGenerateLoginCode     = "usp_generate_login_code"
	ProcVerifyLoginCode       = "usp_verify_login_code"
	ProcUserPermissions       = "usp_get_user_permissions"
	ProcUserIsAdmin           = "usp_user_is_admin"
	ProcBusinessUnits         = "usp_get_business_units"
	ProcOKRTrackerByUser      = "usp_get_okr_tracker_by_user"
	ProcKJOpsByUser           = "usp_get_kjops_by_user"
	ProcPriorityStatuses      = "usp_get_priority_statuses"
	ProcBulkUpdate            = "usp_bulk_update"
	ProcSetSubmissionPeriod   = "usp_set_submission_period"
	ProcOpenSubmissionPeriod  = "usp_open_submission_period"
	ProcCloseSubmissionPeriod = "usp_close_submission_period"
	ProcOKRMasterList         = "usp_get_okr_master_list"
	ProcBusinessUnitsWithOKRs = "usp_get_business_units_with_okrs"
	ProcInsertAppLog          = "usp_insert_app_log"
)
