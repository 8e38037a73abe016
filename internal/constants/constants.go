package constants

// Context key set by the authentication middleware
const ContextKeyUserID = "user_id"

// Authentication
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	MinPasswordLength   = 6
	BcryptCost          = 10
)

// Tasks
const MaxTitleLength = 255

// AI task generation
const (
	MaxAIGeneratedTasks = 20
	OpenAIModel         = "gpt-4o"
)
