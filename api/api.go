// Package api embeds the OpenAPI document of the HTTP interface.
package api

import (
	_ "embed"
)

// OpenAPI is the OpenAPI 3 document served at /swagger and used to validate
// incoming requests.
//
//go:embed openapi.yaml
var OpenAPI []byte
