package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for award cleanup operations
const (
	LogMsgAwardCleanupStarting  = "Expired award cleanup starting"
	LogMsgAwardCleanupCompleted = "Expired award cleanup completed"
	LogMsgAwardCleanupFailed    = "Expired award cleanup failed"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
