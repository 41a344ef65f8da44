package constants

// JobState is the canonical per-document state driven by the two-pass
// orchestrator and the batch engine.
type JobState string

// Stable values (store these exact strings in the results DB).
const (
	JobPending          JobState = "PENDING"            // created, not yet scheduled
	JobFastPassDone     JobState = "FAST_PASS_DONE"     // cheap extraction completed
	JobNeedsQualityPass JobState = "NEEDS_QUALITY_PASS" // routed to the expensive pass
	JobCompleted        JobState = "COMPLETED"          // terminal success
	JobFailed           JobState = "FAILED"             // terminal failure
)
