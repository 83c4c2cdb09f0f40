// Package config loads and validates orders-reporter configuration.
//
// Configuration comes from either source:
//   - a YAML file with ${VAR} environment expansion (Load / LoadAndValidate)
//   - the process environment alone (FromEnv), used by deployments that
//     configure the job through GOOGLE_CLOUD_PROJECT and the DB_* variables
package config
