// Package config loads ytcatalog settings.
//
// Values are layered: built-in defaults, then a TOML file, then YTCATALOG_*
// environment variables. The result is normalized (paths expanded) and
// validated before it is returned.
package config
