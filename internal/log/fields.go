package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUsername   = "username"
	FieldCustomerID = "customer_id"
	FieldTxID       = "tx_id"
	FieldCategory   = "category"
	FieldAmount     = "amount_cents"
	FieldTxType     = "tx_type"
)

// Standard component names.
const (
	ComponentApp         = "app"
	ComponentHTTP        = "http"
	ComponentCredentials = "credentials"
	ComponentLedger      = "ledger"
	ComponentStorage     = "storage"
	ComponentAMQP        = "amqp"
	ComponentWorker      = "worker"
	ComponentSheets      = "sheets"
	ComponentCache       = "cache"
)

// Standard operation names.
const (
	OpRegister     = "register"
	OpAuthenticate = "authenticate"
	OpAdd          = "add"
	OpList         = "list"
	OpDelete       = "delete"
	OpSummarize    = "summarize"
	OpExport       = "export"
	OpMirror       = "mirror"
	OpStartup      = "startup"
	OpShutdown     = "shutdown"
)
