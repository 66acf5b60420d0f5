// Package config loads the backend's YAML configuration.
//
// Configuration sections:
//
//   - server: HTTP listen address
//   - database: SQLite file path
//   - auth: JWT secret and token TTL
//   - logging: level and format (text or json)
//
// ${VAR_NAME} patterns in the file are expanded from the environment before
// parsing, so secrets can be kept out of the file itself.
package config
