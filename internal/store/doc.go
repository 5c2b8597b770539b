// Package store defines the persistence contract for tasks along with the
// shared database plumbing: the DBTX abstraction over connections and
// transactions, transaction orchestration, and the sentinel errors store
// implementations return.
package store
