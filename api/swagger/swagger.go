package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PeakPlay Coaching API",
        "description": "Booking, replay review intake, payments, and back office for the coaching site",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "https",
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Public slot listing and admin schedule management"},
        {"name": "Bookings", "description": "Live session bookings"},
        {"name": "Submissions", "description": "Replay review intake"},
        {"name": "Payments", "description": "Checkout sessions and payment lookup"},
        {"name": "FriendCodes", "description": "Fee-free referral codes"},
        {"name": "Blog", "description": "Marketing blog"},
        {"name": "Contact", "description": "Contact form"},
        {"name": "Discord", "description": "Discord account linking"},
        {"name": "Auth", "description": "Back office authentication"}
    ],
    "paths": {
        "/availability/slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List bookable weekly slots",
                "parameters": [
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "session_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation or scheduling error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit replays for review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/catalog": {
            "get": {
                "tags": ["Payments"],
                "summary": "List coaching types with prices",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/checkout": {
            "post": {
                "tags": ["Payments"],
                "summary": "Start a checkout session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCheckoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Duplicate payment or validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/session/{session_id}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Look up a payment by session id",
                "parameters": [
                    {"name": "session_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/friend-codes/validate": {
            "post": {
                "tags": ["FriendCodes"],
                "summary": "Check whether a friend code is usable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateFriendCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/friend-codes/redeem": {
            "post": {
                "tags": ["FriendCodes"],
                "summary": "Redeem a friend code for a fee-free submission",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RedeemFriendCodeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blog": {
            "get": {
                "tags": ["Blog"],
                "summary": "List published posts",
                "parameters": [
                    {"name": "tag", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blog/{slug}": {
            "get": {
                "tags": ["Blog"],
                "summary": "Get a published post by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["Contact"],
                "summary": "Submit the contact form",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/discord/authorize": {
            "get": {
                "tags": ["Discord"],
                "summary": "Start the Discord OAuth flow",
                "parameters": [
                    {"name": "return_to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Back office login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateBookingRequest": {
            "type": "object",
            "required": ["email", "session_type", "scheduled_at"],
            "properties": {
                "email": {"type": "string"},
                "session_type": {"type": "string"},
                "scheduled_at": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"}
            }
        },
        "CreateSubmissionRequest": {
            "type": "object",
            "required": ["name", "email", "coaching_type", "rank", "role", "replay_codes"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "discord_tag": {"type": "string"},
                "coaching_type": {"type": "string"},
                "rank": {"type": "string"},
                "role": {"type": "string"},
                "hero": {"type": "string"},
                "notes": {"type": "string"},
                "replay_codes": {"type": "array", "items": {"type": "object"}}
            }
        },
        "CreateCheckoutRequest": {
            "type": "object",
            "properties": {
                "submission_id": {"type": "string"},
                "coaching_type": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "ValidateFriendCodeRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {
                "code": {"type": "string"}
            }
        },
        "RedeemFriendCodeRequest": {
            "type": "object",
            "required": ["code", "submission"],
            "properties": {
                "code": {"type": "string"},
                "submission": {"$ref": "#/definitions/CreateSubmissionRequest"}
            }
        },
        "ContactRequest": {
            "type": "object",
            "required": ["name", "email", "message"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
