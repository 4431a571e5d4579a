// Package observability sets up zerolog loggers and HTTP request logging.
package observability
