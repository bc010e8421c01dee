// Package docs holds the swaggo-generated API description for the HTTP
// surface. Normally produced by `swag init`; hand-maintained here in the
// same shape swag emits (SwaggerInfo vars plus a minimal embedded spec) so
// main can wire gin-swagger without a code-generation step.
package docs

import "github.com/swaggo/swag"

var doc = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so it can be modified by other
// packages before registration, matching swag's generated convention.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "stegolsb API",
	Description:      "PNG and WAV LSB steganography service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  doc,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
