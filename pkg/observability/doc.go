/*
Package observability provides monitoring for the navigation engine.

It ships a Prometheus metrics plugin that subscribes to hook firings and
counts visits, supersessions, fetches and cache activity, plus an event
recorder for capturing hook traffic in tests and diagnostics.
*/
package observability
