package constants

const (
	// ContextKeyUserID is the gin context key for the authenticated user ID.
	ContextKeyUserID = "user_id"

	// AuthCookieName is the cookie carrying the access token.
	AuthCookieName = "access_token"

	// MinPasswordLength is the minimum accepted password length on signup.
	MinPasswordLength = 8

	// ImportBatchSize is the number of pending records accumulated before a
	// bulk insert during a Trello import pass.
	ImportBatchSize = 100

	// MaxImportFileSize caps the uploaded Trello export size in bytes.
	MaxImportFileSize = 5 << 20

	// Pagination defaults
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Board-change action tags carried in realtime notifications.
const (
	ActionListCreated       = "list_created"
	ActionListUpdated       = "list_updated"
	ActionListMoved         = "list_moved"
	ActionListDeleted       = "list_deleted"
	ActionTaskCreated       = "task_created"
	ActionTaskUpdated       = "task_updated"
	ActionTaskMoved         = "task_moved"
	ActionTaskDeleted       = "task_deleted"
	ActionMemberRemoved     = "member_removed"
	ActionMemberRoleChanged = "member_role_changed"
	ActionBoardUpdated      = "board_updated"
	ActionBoardDeleted      = "board_deleted"
	ActionImportCompleted   = "import_completed"
)

// TaskImportJob is the asynq task type for a queued Trello import.
const TaskImportJob = "import:trello"
