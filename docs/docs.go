// Package docs holds the swagger document served on /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Check if the updater is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "Updater is healthy",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        },
        "/live": {
            "get": {
                "description": "Check if the updater is alive",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {
                    "200": {
                        "description": "Updater is alive",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Ready once the dispatch list has been resolved",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {
                        "description": "Updater is ready",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    },
                    "503": {
                        "description": "Hierarchy not resolved yet",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        },
        "/status": {
            "get": {
                "description": "Watermark, cycle counts and last error of the polling loop",
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Poller Status",
                "responses": {
                    "200": {
                        "description": "Poller status",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    },
                    "503": {
                        "description": "Hierarchy not resolved yet",
                        "schema": {"$ref": "#/definitions/response.Resp"}
                    }
                }
            }
        }
    },
    "definitions": {
        "response.Resp": {
            "type": "object",
            "properties": {
                "data": {},
                "error_code": {"type": "integer"},
                "errors": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Task Description Updater API",
	Description:      "Status API of the ClickUp task description updater.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
