package contextkeys

// Custom key type to avoid collisions in context values.
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB (the shared
// pool, or a transaction injected by the test harness) is stored.
const DBContextKey = contextKey("db")
