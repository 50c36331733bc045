// Package logger provides structured logging using zerolog.
//
// The SDK logs every outbound call at debug level with the verb, the
// endpoint (never the query string, which carries the access token) and a
// per-call request id. Secrets pass through Mask before they are logged.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.New(&cfg, "my-app").WithComponent("qq")
//	log.Info("authorized", logger.Fields("openid", openid))
package logger
