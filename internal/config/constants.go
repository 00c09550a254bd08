package config

// Store backend identifiers
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Default server settings
const (
	DefaultPort = 8080
)

// Default wheel settings
const (
	DefaultMaxSpinsPerSession = 3
	DefaultMaxSpinsPerDay     = 10
	DefaultSpinCooldownMs     = 300000 // 5 minutes
	DefaultAwardValidityHours = 24
)
