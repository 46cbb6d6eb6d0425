/*
Package ports defines the driven ports (interfaces) behind formlogic's remote
operation tracking.

These interfaces decouple polling and the CLI from the storage backend, so the
same status can live in Redis or in memory.

# Key Interfaces

  - StatusStore: publishes and loads poll.StatusReport documents per operation id,
    and claims an operation atomically with Begin.
*/
package ports
