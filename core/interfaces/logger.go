package interfaces

// Logger defines the interface for logging throughout the application.
// This abstraction keeps core packages free of a concrete logging library;
// the server wires a logrus implementation.
//
// Example usage:
//
//	logger.Info("Run started", map[string]interface{}{
//		"run_id":   run.ID,
//		"entities": len(run.Entities),
//	})
//
//	logger.Warn("Entity failed", map[string]interface{}{
//		"entity": entity.Value,
//		"error":  err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warning messages indicate potential issues that don't prevent operation.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}
