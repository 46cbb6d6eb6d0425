// Package redis stores remote operation status reports in Redis so that workers can
// publish progress and callers can poll it with package poll.
package redis
