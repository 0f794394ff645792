// Package schemas embeds the JSON Schemas for the config and sent-log documents.
package schemas

import _ "embed"

// Config is the JSON Schema for the sender configuration file.
//
//go:embed config.schema.json
var Config string

// SentLog is the JSON Schema for the JSON sent-log file.
//
//go:embed sent_log.schema.json
var SentLog string
