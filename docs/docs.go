// Package docs registers the OpenAPI document served by gin-swagger in dev mode.
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
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in with id and password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {"200": {"description": "token issued"}, "401": {"description": "bad credentials"}, "403": {"description": "account disabled"}}
            }
        },
        "/auth/session": {
            "get": {"tags": ["auth"], "security": [{"Bearer": []}], "summary": "Current session", "responses": {"200": {"description": "session"}, "401": {"description": "no session"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "security": [{"Bearer": []}], "summary": "Revoke the current token", "responses": {"200": {"description": "signed out"}}}
        },
        "/inventory/items": {
            "get": {
                "tags": ["inventory"], "security": [{"Bearer": []}],
                "summary": "List items, newest first",
                "parameters": [{"in": "query", "name": "q", "type": "string", "description": "case-insensitive match on name or category"}],
                "responses": {"200": {"description": "items"}}
            },
            "post": {
                "tags": ["inventory"], "security": [{"Bearer": []}],
                "summary": "Add an item",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.CreateItemRequest"}}],
                "responses": {"201": {"description": "created; full list re-fetched"}, "400": {"description": "validation error"}}
            }
        },
        "/inventory/items/{id}": {
            "get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Get one item", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "item"}, "404": {"description": "not found"}}},
            "patch": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Partial update", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "updated"}, "404": {"description": "not found"}}},
            "delete": {
                "tags": ["inventory"], "security": [{"Bearer": []}],
                "summary": "Delete an item (requires confirm=true)",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "query", "name": "confirm", "type": "boolean", "required": true}],
                "responses": {"200": {"description": "deleted"}, "404": {"description": "not found"}, "428": {"description": "confirmation required"}}
            }
        },
        "/scan": {
            "post": {
                "tags": ["shelves"], "security": [{"Bearer": []}],
                "summary": "Look up a shelf by QR code",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/shelves.ScanRequest"}}],
                "responses": {"200": {"description": "found or not found (found=false)"}, "400": {"description": "blank code"}}
            }
        },
        "/shelves": {
            "get": {"tags": ["shelves"], "security": [{"Bearer": []}], "summary": "List shelves", "responses": {"200": {"description": "shelves"}}},
            "post": {"tags": ["shelves"], "security": [{"Bearer": []}], "summary": "Add a shelf", "responses": {"201": {"description": "created"}, "409": {"description": "qr_code already exists"}}}
        },
        "/shelves/labels.csv": {
            "get": {"tags": ["shelves"], "security": [{"Bearer": []}], "summary": "Label printer CSV", "produces": ["text/csv"], "parameters": [{"in": "query", "name": "encoding", "type": "string", "enum": ["utf8", "cp932"]}], "responses": {"200": {"description": "csv"}}}
        },
        "/shelves/{id}/qr.png": {
            "get": {"tags": ["shelves"], "security": [{"Bearer": []}], "summary": "Shelf QR code", "produces": ["image/png"], "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}, {"in": "query", "name": "size", "type": "integer"}], "responses": {"200": {"description": "png"}}}
        },
        "/volunteers/tasks": {
            "get": {"tags": ["volunteers"], "security": [{"Bearer": []}], "summary": "List tasks (incomplete first, by due date)", "responses": {"200": {"description": "tasks"}}},
            "post": {"tags": ["volunteers"], "security": [{"Bearer": []}], "summary": "Add a task", "responses": {"201": {"description": "created"}}}
        },
        "/volunteers/tasks/{id}/toggle": {
            "post": {"tags": ["volunteers"], "security": [{"Bearer": []}], "summary": "Toggle completion", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "toggled"}, "404": {"description": "not found"}}}
        },
        "/suggestions": {
            "get": {"tags": ["suggestions"], "security": [{"Bearer": []}], "summary": "List suggestions, newest first", "responses": {"200": {"description": "suggestions with display tone"}}}
        },
        "/suggestions/{id}/status": {
            "patch": {"tags": ["suggestions"], "security": [{"Bearer": []}], "summary": "Change status", "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}], "responses": {"200": {"description": "updated"}, "400": {"description": "unknown status"}, "404": {"description": "not found"}}}
        },
        "/public/suggestions": {
            "post": {
                "tags": ["suggestions"],
                "summary": "Submit a suggestion (no sign-in)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/suggestions.SubmitRequest"}}],
                "responses": {"201": {"description": "thank-you with redirect hint"}, "400": {"description": "first violated rule"}}
            }
        },
        "/dashboard/stats": {
            "get": {"tags": ["dashboard"], "security": [{"Bearer": []}], "summary": "Four dashboard counters", "responses": {"200": {"description": "stats"}}}
        },
        "/dashboard/ws": {
            "get": {"tags": ["dashboard"], "summary": "Websocket stream of dashboard counters", "parameters": [{"in": "query", "name": "token", "type": "string", "required": true}], "responses": {"101": {"description": "switching protocols"}, "401": {"description": "bad token"}}}
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object", "required": ["id", "password"],
            "properties": {"id": {"type": "string"}, "password": {"type": "string"}}
        },
        "inventory.CreateItemRequest": {
            "type": "object", "required": ["name", "category"],
            "properties": {
                "name": {"type": "string"}, "category": {"type": "string"},
                "quantity": {"type": "integer", "minimum": 0},
                "expiry_date": {"type": "string", "example": "2026-12-31"},
                "notes": {"type": "string"}, "shelf_id": {"type": "string"}
            }
        },
        "shelves.ScanRequest": {
            "type": "object", "properties": {"qr_code": {"type": "string"}}
        },
        "suggestions.SubmitRequest": {
            "type": "object", "required": ["suggestion"],
            "properties": {
                "suggestion": {"type": "string", "minLength": 10, "maxLength": 1000},
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string", "maxLength": 255}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pantry API",
	Description:      "Food pantry inventory, shelf scanning, volunteer tasks and suggestions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
