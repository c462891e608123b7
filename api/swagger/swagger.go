package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TU. Wellness Booking API",
        "description": "Class schedule, availability and booking service for the TU. Wellness studio",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classes", "description": "Schedule listing and availability"},
        {"name": "Bookings", "description": "Public booking"},
        {"name": "Payments", "description": "Hosted payment links"},
        {"name": "Webhooks", "description": "Payment provider callbacks"},
        {"name": "Auth", "description": "Operator authentication"},
        {"name": "Admin", "description": "Roster management"}
    ],
    "paths": {
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes for a date or date range",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DaySchedule"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Classes"],
                "summary": "Check availability of one class slot",
                "parameters": [
                    {"name": "classId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AvailabilityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/book": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a class slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/BookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["Payments"],
                "summary": "Create a hosted payment link",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PaymentLinkResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/webhooks/wompi": {
            "get": {
                "tags": ["Webhooks"],
                "summary": "Webhook endpoint liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Webhooks"],
                "summary": "Receive a payment provider event",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/WebhookAck"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Operator login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "tags": ["Admin"],
                "summary": "List bookings by class or customer email",
                "parameters": [
                    {"name": "classId", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/admin/bookings/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Cancel a booking and free its spot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/admin/classes/{classId}/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export a class roster as CSV or PDF",
                "parameters": [
                    {"name": "classId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "array", "items": {"type": "object"}}
            }
        },
        "DaySchedule": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "classes": {"type": "array", "items": {"type": "object"}},
                "totalClasses": {"type": "integer"}
            }
        },
        "AvailabilityResponse": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "spotsRemaining": {"type": "integer"},
                "canBook": {"type": "boolean"},
                "reason": {"type": "string"},
                "classDetails": {"type": "object"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "required": ["classId", "customerName", "email", "whatsapp", "experienceLevel"],
            "properties": {
                "classId": {"type": "string"},
                "customerName": {"type": "string"},
                "email": {"type": "string"},
                "whatsapp": {"type": "string"},
                "experienceLevel": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]}
            }
        },
        "BookingResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "booking": {"type": "object"},
                "paymentUrl": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "CreatePaymentRequest": {
            "type": "object",
            "required": ["amount", "customerEmail", "customerName"],
            "properties": {
                "amount": {"type": "integer"},
                "currency": {"type": "string", "enum": ["COP", "USD"]},
                "reference": {"type": "string"},
                "customerEmail": {"type": "string"},
                "customerName": {"type": "string"},
                "description": {"type": "string"},
                "bookingId": {"type": "string"}
            }
        },
        "PaymentLinkResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "reference": {"type": "string"},
                "paymentUrl": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "WebhookAck": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
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
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string"}
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
