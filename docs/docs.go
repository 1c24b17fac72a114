// Package docs serves the OpenAPI description of the HTTP API. Regenerate it
// with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handler.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games": {
            "get": {
                "tags": ["games"],
                "summary": "Get a filtered list of games",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "mode", "in": "query"},
                    {"type": "integer", "name": "num_players", "in": "query"},
                    {"type": "number", "name": "rating", "in": "query"},
                    {"type": "string", "name": "categories", "in": "query"},
                    {"type": "string", "default": "OR", "name": "category_filter_type", "in": "query"},
                    {"type": "string", "name": "language", "in": "query"},
                    {"type": "string", "name": "owner", "in": "query"},
                    {"type": "boolean", "name": "my_games_only", "in": "query"},
                    {"type": "boolean", "name": "household_only", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PaginatedResponse-catalog_Record"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["games"],
                "summary": "Add a game to the catalogue",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}},
                    {"type": "boolean", "name": "force", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/catalog.Record"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.DuplicatesResponse"}}
                }
            }
        },
        "/games/duplicates": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["games"],
                "summary": "Screen a game for duplicates",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DuplicatesResponse"}}
                }
            }
        },
        "/games/{id}": {
            "get": {
                "tags": ["games"],
                "summary": "Get a single game by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Record"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["games"],
                "summary": "Update a game",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Record"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["games"],
                "summary": "Delete a game",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.Record": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "language": {"type": "string"},
                "rating": {"type": "number"},
                "min_players": {"type": "integer"},
                "max_players": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "owners": {"type": "array", "items": {"type": "string"}},
                "tag": {"type": "string"},
                "last_played": {"type": "string"},
                "designer": {"type": "string"},
                "artist": {"type": "string"},
                "publisher": {"type": "string"},
                "min_playtime": {"type": "integer"},
                "max_playtime": {"type": "integer"},
                "year": {"type": "integer"},
                "bgg_url": {"type": "string"},
                "image_url": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "duplicate.Match": {
            "type": "object",
            "properties": {
                "record": {"$ref": "#/definitions/catalog.Record"},
                "score": {"type": "number"}
            }
        },
        "handler.DuplicatesResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "duplicates": {"type": "array", "items": {"$ref": "#/definitions/duplicate.Match"}}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "An error message"}}
        },
        "handler.GameInput": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "13"},
                "bgg_id": {"type": "string", "example": "13"},
                "name": {"type": "string", "example": "Catan"},
                "language": {"type": "string", "example": "en"},
                "rating": {"type": "number", "example": 7.5},
                "min_players": {"type": "integer", "example": 3},
                "max_players": {"type": "integer", "example": 4},
                "categories": {"type": "array", "items": {"type": "string"}},
                "owners": {"type": "array", "items": {"type": "string"}},
                "tag": {"type": "string", "example": "Board Game"},
                "last_played": {"type": "string", "example": "2024-03-01"}
            }
        },
        "handler.LoginInput": {
            "type": "object",
            "required": ["login", "password"],
            "properties": {
                "login": {"type": "string", "example": "testuser"},
                "password": {"type": "string", "example": "password123"}
            }
        },
        "handler.PaginatedResponse-catalog_Record": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/catalog.Record"}},
                "meta": {"$ref": "#/definitions/handler.PaginationMeta"}
            }
        },
        "handler.PaginationMeta": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "handler.RegisterInput": {
            "type": "object",
            "required": ["email", "nickname", "password"],
            "properties": {
                "email": {"type": "string", "example": "test@example.com"},
                "nickname": {"type": "string", "example": "testuser"},
                "password": {"type": "string", "minLength": 8, "example": "password123"}
            }
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Boardshelf API",
	Description:      "This is the API for the Boardshelf board game catalogue.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
