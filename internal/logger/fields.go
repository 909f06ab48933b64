package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

const (
	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSessionID identifies one open search modal
	FieldSessionID = "session_id"

	// FieldQuery is the catalog search keyword
	FieldQuery = "query"

	// FieldPage is the requested catalog page
	FieldPage = "page"

	// FieldURL is a media or catalog URL
	FieldURL = "url"
)

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldStatus is the operation or widget status
	FieldStatus = "status"
)
