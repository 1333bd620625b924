// Package logging provides structured logging for the notebook tools.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the module. It provides both general logging
// functions and specialized functions for widget and remote-control events.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Tab transitions, signal emissions, WebSocket payloads
//   - Info: Server lifecycle, client connections, mDNS registration
//   - Warn: Malformed remote commands, dropped slow clients
//   - Error: Startup failures, write errors
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Client connected",
//	    zap.String("remote_addr", "192.168.1.100:50122"),
//	    zap.String("session", "3f2a9c1e"),
//	)
//
// # Specialized Logging
//
// Tab transitions:
//
//	logging.LogTransition(notebookID, tabID, "select", "user")
//
// Signal emission:
//
//	logging.LogSignal(emitterID, "current_tab_change", handlerCount)
//
// Connection and WebSocket logging:
//
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//	logging.LogWebSocketMessage(remoteAddr, "received", msgType, payload)
//
// # Configuration
//
// Logging is silent unless NOTEBOOK_LOG_LEVEL is set or a level is passed
// explicitly:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The interactive viewer owns the terminal, so set NOTEBOOK_LOG_FILE to send
// log output to a file while it runs.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
