package constants

// JobStatus is the canonical status for rows in menu_jobs.
type JobStatus string

// Stable values (store these exact strings in the DB).
const (
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusOK      JobStatus = "OK"      // all chunks structured
	JobStatusPartial JobStatus = "PARTIAL" // some chunks failed, items salvaged
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
