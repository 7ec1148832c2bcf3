package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Portal Console API",
        "description": "Operator console and public pages over the campus content API",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Console", "description": "Operator session, tabs and forms"},
        {"name": "Console Resources", "description": "Tables, exports and deletes per content type"},
        {"name": "Console Alerts", "description": "Transient operator notifications"},
        {"name": "Public", "description": "News, events and admissions pages"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A backing dependency is unavailable"}
                }
            }
        },
        "/metrics": {
            "get": {"summary": "Prometheus metrics", "produces": ["text/plain"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/admin/session": {
            "get": {
                "tags": ["Console"],
                "summary": "Probe the stored session; tokens are only issued by login",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/v1/admin/login": {
            "post": {
                "tags": ["Console"],
                "summary": "Log the operator in and load every collection",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/logout": {
            "post": {
                "tags": ["Console"],
                "summary": "End the operator session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Console token required", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/state": {
            "get": {
                "tags": ["Console"],
                "summary": "Current console snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Session expired", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/reload": {
            "post": {
                "tags": ["Console"],
                "summary": "Reload every collection",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/v1/admin/tab": {
            "put": {
                "tags": ["Console"],
                "summary": "Select the active tab",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TabRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Unknown tab", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/form": {
            "post": {
                "tags": ["Console"],
                "summary": "Open an empty create form for the active tab",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "patch": {
                "tags": ["Console"],
                "summary": "Merge field values into the open form",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/FormFieldsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "delete": {
                "tags": ["Console"],
                "summary": "Close the form without saving",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/v1/admin/form/edit/{id}": {
            "post": {
                "tags": ["Console"],
                "summary": "Open an edit form prefilled from a record of the active tab",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/form/submit": {
            "post": {
                "tags": ["Console"],
                "summary": "Create or update the record held by the open form",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}},
                    "502": {"description": "Content API failure", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/resources/{type}": {
            "get": {
                "tags": ["Console Resources"],
                "summary": "Table rows for one content type",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "type", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Unknown type", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/resources/{type}/export": {
            "get": {
                "tags": ["Console Resources"],
                "summary": "Download the table as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "path", "name": "type", "required": true, "type": "string"},
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/api/v1/admin/resources/{type}/{id}": {
            "delete": {
                "tags": ["Console Resources"],
                "summary": "Delete one record after confirmation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "type", "required": true, "type": "string"},
                    {"in": "path", "name": "id", "required": true, "type": "integer"},
                    {"in": "query", "name": "confirm", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "428": {"description": "Confirmation required", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/alerts": {
            "get": {
                "tags": ["Console Alerts"],
                "summary": "Visible alerts in insertion order",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "delete": {
                "tags": ["Console Alerts"],
                "summary": "Dismiss every alert",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/admin/alerts/{id}": {
            "delete": {
                "tags": ["Console Alerts"],
                "summary": "Dismiss one alert",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/admin/activity": {
            "get": {
                "tags": ["Console"],
                "summary": "Recorded operator writes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "resource", "type": "string"},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/api/v1/public/news": {
            "get": {
                "tags": ["Public"],
                "summary": "News and events page with the month calendar",
                "parameters": [{"in": "query", "name": "month", "type": "string", "description": "YYYY-MM"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Invalid month", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/public/news/{kind}/{id}": {
            "get": {
                "tags": ["Public"],
                "summary": "Detail view of one event, announcement or achievement",
                "parameters": [
                    {"in": "path", "name": "kind", "required": true, "type": "string"},
                    {"in": "path", "name": "id", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/api/v1/public/admissions": {
            "get": {
                "tags": ["Public"],
                "summary": "Admissions page",
                "parameters": [{"in": "query", "name": "category", "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Unknown category", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TabRequest": {
            "type": "object",
            "required": ["tab"],
            "properties": {
                "tab": {"type": "string"}
            }
        },
        "FormFieldsRequest": {
            "type": "object",
            "required": ["fields"],
            "properties": {
                "fields": {"type": "object"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
