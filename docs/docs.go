// Package docs registers the OpenAPI description served at /swagger.
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
        "/user/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}}
            }
        },
        "/user/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}}
            }
        },
        "/user/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}}}
            }
        },
        "/api/v1/ask": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Ask a question about your finances",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.AskRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AskResponse"}}}
            }
        },
        "/api/v1/history": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "List recent questions",
                "parameters": [{"in": "query", "name": "limit", "type": "integer", "default": 20}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.QuestionLogResponse"}}}}
            }
        },
        "/api/v1/help": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Example questions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HelpResponse"}}}
            }
        },
        "/api/v1/wallets": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "List the caller's wallets",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.WalletResponse"}}}}
            }
        },
        "/api/v1/transactions": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "List the caller's transactions across all wallets, newest first",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}}
            }
        }
    },
    "definitions": {
        "dto.RegisterRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "full_name": {"type": "string"}, "password": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.RefreshTokenRequest": {"type": "object", "properties": {"refresh_token": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "full_name": {"type": "string"}}},
        "dto.AuthResponse": {"type": "object", "properties": {"access_token": {"type": "string"}, "refresh_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_in": {"type": "integer"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.AskRequest": {"type": "object", "properties": {"question": {"type": "string"}}},
        "dto.DateRangeResponse": {"type": "object", "properties": {"start": {"type": "string"}, "end": {"type": "string"}}},
        "dto.AskResponse": {"type": "object", "properties": {"outcome": {"type": "string"}, "intent": {"type": "string"}, "answer": {"type": "string"}, "value": {"type": "string"}, "source": {"type": "string"}, "range": {"$ref": "#/definitions/dto.DateRangeResponse"}}},
        "dto.HelpResponse": {"type": "object", "properties": {"text": {"type": "string"}}},
        "dto.WalletResponse": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "balance": {"type": "string"}, "formatted": {"type": "string"}, "created_at": {"type": "string"}}},
        "dto.TransactionResponse": {"type": "object", "properties": {"id": {"type": "string"}, "amount": {"type": "string"}, "date": {"type": "string"}, "category": {"type": "string"}, "group": {"type": "string"}}},
        "dto.QuestionLogResponse": {"type": "object", "properties": {"id": {"type": "string"}, "question": {"type": "string"}, "intent": {"type": "string"}, "outcome": {"type": "string"}, "answer": {"type": "string"}, "value": {"type": "string"}, "source": {"type": "string"}, "created_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "Bearer": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fin Assistant API",
	Description:      "Trợ lý tài chính cá nhân: trả lời câu hỏi về thu nhập, chi tiêu và số dư từ giao dịch của người dùng",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
