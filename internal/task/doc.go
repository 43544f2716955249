// Package task runs background work detached from the HTTP request that
// produced it. A bounded queue feeds a fixed set of workers; submission never
// blocks, and a full queue rejects the task instead.
package task
