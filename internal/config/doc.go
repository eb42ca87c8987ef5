// Package config handles configuration loading for tasknest-server.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${TASKNEST_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	auth:
//	  token_ttl: "24h"
//	ai:
//	  timeout: "30s"
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/tasknest/tasknest.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${TASKNEST_JWT_SECRET}"  # falls back to a dev-only default
//	  token_ttl: "24h"
//
// Generator:
//
//	ai:
//	  api_key: "${GOOGLE_AI_API_KEY}"
//	  model: "gemini-flash-lite-latest"
//	  timeout: "30s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
