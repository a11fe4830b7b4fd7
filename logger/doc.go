// Package logger provides structured logging for primekit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. The prime generators log
// their work at debug level through component loggers obtained from Get.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("prime.incremental")
//	log.Debug("extended", logger.Fields(logger.FieldMax, 1000))
package logger
