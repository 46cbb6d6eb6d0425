/*
Package observability provides tools for monitoring poll invocations.

It includes lifecycle hooks for auditing attempts and outcomes through a structured
logger, and Prometheus collectors fed by the same hooks. Both plug into a poll via
poll.WithHooks and can be combined freely.
*/
package observability
