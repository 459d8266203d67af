// Package task bounds the number of concurrent provider calls. Blocking work
// is wrapped in a Task, buffered in a TaskQueue and executed by a fixed set of
// WorkerPool goroutines, so that a burst of HTTP requests cannot open an
// unbounded number of upstream connections.
package task
