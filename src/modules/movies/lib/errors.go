package movies

import "fmt"

// InvalidFilterError marks malformed caller input (bad id, bad date, score out of
// range). It is surfaced immediately and never retried.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Reason)
}

// DatastoreUnavailableError wraps a connection or transaction failure. Callers
// may treat it as transient and retry; the data layer itself never retries.
type DatastoreUnavailableError struct {
	Op  string
	Err error
}

func (e *DatastoreUnavailableError) Error() string {
	return fmt.Sprintf("datastore unavailable during %s: %v", e.Op, e.Err)
}

func (e *DatastoreUnavailableError) Unwrap() error { return e.Err }

// RecommendationUnavailableError is a datastore failure during recommendation
// scoring. It is distinct from the legitimate empty-result cases, which are not
// errors at all.
type RecommendationUnavailableError struct {
	Err error
}

func (e *RecommendationUnavailableError) Error() string {
	return fmt.Sprintf("recommendations unavailable: %v", e.Err)
}

func (e *RecommendationUnavailableError) Unwrap() error { return e.Err }
