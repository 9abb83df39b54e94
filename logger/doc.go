// Package logger provides structured logging for lambda handlers using
// zerolog.
//
// JSON output to stdout is the default so CloudWatch can index fields;
// console output is available for local runs. Loggers are enriched with
// the invocation request id taken from the context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("orders")
//	log.WithContext(ctx).Info("order created", logger.Fields("order_id", id))
package logger
