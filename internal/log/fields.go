package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldUserID      = "user_id"
	FieldExpenseID   = "expense_id"
	FieldExpenseDesc = "expense_description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldController  = "controller"
	FieldGeneration  = "generation"
	FieldCount       = "count"
	FieldRange       = "range"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentAPI        = "api"
	ComponentSession    = "session"
	ComponentAuth       = "auth"
	ComponentExpense    = "expense"
	ComponentController = "controller"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentExport     = "export"
	ComponentBackend    = "backend"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpSummary = "summary"
	OpSignIn  = "sign_in"
	OpSignUp  = "sign_up"
	OpSignOut = "sign_out"
	OpSave    = "save"
	OpClear   = "clear"
	OpLoad    = "load"
	OpPublish = "publish"
	OpExport  = "export"
	OpStartup = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRequestID adds request ID field
func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithUserID adds the acting user
func (f LogFields) WithUserID(userID string) LogFields {
	if userID != "" {
		f[FieldUserID] = userID
	}
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(id, desc, amount, category string) LogFields {
	if id != "" {
		f[FieldExpenseID] = id
	}
	f[FieldExpenseDesc] = desc
	f[FieldAmount] = amount
	f[FieldCategory] = category
	return f
}

// WithHTTPRequest adds outgoing HTTP request fields
func (f LogFields) WithHTTPRequest(method, path, query string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	if query != "" {
		f[FieldQuery] = query
	}
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
