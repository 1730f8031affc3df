// Package ingestion imports raw material payloads into a record store.
//
// The Pipeline type manages the import workflow:
//   - Decoding raw payloads concurrently on a worker pool
//   - Validating the decoded materials
//   - Writing them to storage in batches, retrying transient failures
//
// Payloads that fail to decode are counted in the ImportReport and never
// stop the import.
package ingestion
