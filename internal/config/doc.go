// Package config loads and validates viaduct.json project configuration.
//
// Configuration is resolved in three layers: built-in defaults, the
// viaduct.json file, and finally environment variables (APP_ENV,
// VIADUCT_PORT, VIADUCT_HOST), each overriding the previous.
package config
