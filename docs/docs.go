// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains token, token_type and user", "schema": {"$ref": "#/definitions/controllers.AuthSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict (email already registered)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains token, token_type and user", "schema": {"$ref": "#/definitions/controllers.AuthSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "data contains the user", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update current user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the updated user", "schema": {"$ref": "#/definitions/controllers.UserSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Deactivate current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "data.message confirms the deactivation", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/users/me/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Change password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "data.message confirms the change", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "List my pacts",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "data contains the pacts", "schema": {"$ref": "#/definitions/controllers.PactListSuccessResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "Create a pact",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreatePactRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains pact, guests and stats", "schema": {"$ref": "#/definitions/controllers.PactDetailsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "Get a pact",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "pactID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains pact, guests and stats", "schema": {"$ref": "#/definitions/controllers.PactDetailsSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "Update a pact",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "pactID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdatePactRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the updated pact", "schema": {"$ref": "#/definitions/controllers.PactSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden (not host)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "Delete a pact",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "pactID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data.message confirms the deletion", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden (not host)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "Cancel a pact",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "pactID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the cancelled pact", "schema": {"$ref": "#/definitions/controllers.PactSuccessResponse"}},
                    "403": {"description": "error.code: forbidden (not host)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}/reminders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pacts"],
                "summary": "Send reminders",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "pactID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data.queued is the number of reminders queued", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request (cancelled or reminders disabled)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden (not host)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}/guests": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["guests"],
                "summary": "List guests",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "pactID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the guests", "schema": {"$ref": "#/definitions/controllers.GuestRSVPListSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["guests"],
                "summary": "Invite guests",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "pactID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.AddGuestsRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the invited guests", "schema": {"$ref": "#/definitions/controllers.GuestListSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden (not host)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}/rsvp": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rsvps"],
                "summary": "Respond to a pact",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "pactID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RSVPRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the recorded response", "schema": {"$ref": "#/definitions/controllers.RSVPSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found (absent pact or not invited)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict (pact is full)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}/rsvps": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rsvps"],
                "summary": "List responses",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "pactID", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains items and pagination", "schema": {"$ref": "#/definitions/controllers.RSVPListSuccessResponse"}},
                    "403": {"description": "error.code: forbidden (not host)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/pacts/{pactID}/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rsvps"],
                "summary": "Response counts",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "pactID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the counts", "schema": {"$ref": "#/definitions/controllers.StatsSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "helpers.PaginationMeta": {
            "type": "object",
            "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total": {"type": "integer"}, "total_pages": {"type": "integer"}}
        },
        "controllers.RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 8}}
        },
        "controllers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "token_type": {"type": "string"}, "user": {"$ref": "#/definitions/domain.User"}}
        },
        "controllers.AuthSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/controllers.AuthResponse"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.UpdateUserRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "controllers.ChangePasswordRequest": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {"current_password": {"type": "string"}, "new_password": {"type": "string", "minLength": 8}}
        },
        "controllers.UserSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.User"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.GuestInviteRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "controllers.CreatePactRequest": {
            "type": "object",
            "required": ["title", "date", "guests"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string", "example": "2030-06-01"},
                "time": {"type": "string", "example": "18:30"},
                "location": {"type": "string"},
                "address": {"type": "string"},
                "rsvp_deadline": {"type": "string", "example": "2030-05-25"},
                "send_reminders": {"type": "boolean"},
                "allow_plus_ones": {"type": "boolean"},
                "max_attendees": {"type": "integer", "minimum": 1},
                "guests": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/controllers.GuestInviteRequest"}}
            }
        },
        "controllers.UpdatePactRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "location": {"type": "string"},
                "address": {"type": "string"},
                "rsvp_deadline": {"type": "string"},
                "send_reminders": {"type": "boolean"},
                "allow_plus_ones": {"type": "boolean"},
                "max_attendees": {"type": "integer", "minimum": 1},
                "status": {"type": "string", "enum": ["active", "cancelled"]},
                "clear_rsvp_deadline": {"type": "boolean"},
                "clear_max_attendees": {"type": "boolean"}
            }
        },
        "controllers.AddGuestsRequest": {
            "type": "object",
            "required": ["guests"],
            "properties": {"guests": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/controllers.GuestInviteRequest"}}}
        },
        "controllers.RSVPRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["confirmed", "declined"]},
                "plus_ones": {"type": "integer", "minimum": 0},
                "message": {"type": "string"}
            }
        },
        "controllers.PactSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Pact"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.PactListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Pact"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.PactDetailsSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.PactDetails"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.GuestListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Guest"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.GuestRSVPListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.GuestWithRSVP"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.RSVPSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.RSVP"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.RSVPListResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/domain.RSVPWithGuest"}}, "pagination": {"$ref": "#/definitions/helpers.PaginationMeta"}}
        },
        "controllers.RSVPListSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/controllers.RSVPListResponse"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.StatsSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.RSVPStats"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "is_active": {"type": "boolean"},
                "last_login_at": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Pact": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "host_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "event_date": {"type": "string"},
                "event_time": {"type": "string"},
                "location": {"type": "string"},
                "address": {"type": "string"},
                "rsvp_deadline": {"type": "string"},
                "send_reminders": {"type": "boolean"},
                "allow_plus_ones": {"type": "boolean"},
                "max_attendees": {"type": "integer"},
                "status": {"type": "string", "enum": ["active", "cancelled"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Guest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pact_id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "user_id": {"type": "string"},
                "is_host": {"type": "boolean"},
                "invited_at": {"type": "string"}
            }
        },
        "domain.RSVP": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "guest_id": {"type": "string"},
                "pact_id": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "confirmed", "declined", "attending"]},
                "plus_ones": {"type": "integer"},
                "message": {"type": "string"},
                "responded_at": {"type": "string"}
            }
        },
        "domain.GuestWithRSVP": {
            "type": "object",
            "properties": {"guest": {"$ref": "#/definitions/domain.Guest"}, "rsvp": {"$ref": "#/definitions/domain.RSVP"}}
        },
        "domain.RSVPWithGuest": {
            "type": "object",
            "properties": {"rsvp": {"$ref": "#/definitions/domain.RSVP"}, "guest_name": {"type": "string"}, "guest_email": {"type": "string"}}
        },
        "domain.RSVPStats": {
            "type": "object",
            "properties": {
                "total_invited": {"type": "integer"},
                "confirmed": {"type": "integer"},
                "declined": {"type": "integer"},
                "pending": {"type": "integer"},
                "total_attendees": {"type": "integer"}
            }
        },
        "domain.PactDetails": {
            "type": "object",
            "properties": {
                "pact": {"$ref": "#/definitions/domain.Pact"},
                "guests": {"type": "array", "items": {"$ref": "#/definitions/domain.GuestWithRSVP"}},
                "stats": {"$ref": "#/definitions/domain.RSVPStats"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PlanPact API",
	Description:      "Create pacts, invite guests and track their responses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
