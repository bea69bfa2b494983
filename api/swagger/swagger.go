package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Weekly class schedule builder: catalog browsing, selection store and calendar layout",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Course catalog browsing and filtering"},
        {"name": "Selection", "description": "Picked courses per term"},
        {"name": "Schedule", "description": "Weekly grid layout and exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Browse the course catalog",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "integer"},
                    {"name": "days", "in": "query", "type": "string"},
                    {"name": "fields", "in": "query", "type": "string"},
                    {"name": "min_from_time", "in": "query", "type": "string"},
                    {"name": "hide_conflicting", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Filtered courses", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalog/fields": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Field-of-study filter vocabulary",
                "responses": {
                    "200": {"description": "Field labels", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalog/available": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Courses not yet picked in any term",
                "responses": {
                    "200": {"description": "Available courses", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalog/courses/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Course details",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Course record", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/selection": {
            "get": {
                "tags": ["Selection"],
                "summary": "Picked courses per term",
                "responses": {
                    "200": {"description": "Selection state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Selection"],
                "summary": "Empty every term's picks",
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/api/v1/selection/courses": {
            "post": {
                "tags": ["Selection"],
                "summary": "Pick a course",
                "responses": {
                    "201": {"description": "Picked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown course"}
                }
            }
        },
        "/api/v1/selection/terms/{term}": {
            "delete": {
                "tags": ["Selection"],
                "summary": "Empty one term's picks",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/api/v1/selection/terms/{term}/courses/{id}": {
            "delete": {
                "tags": ["Selection"],
                "summary": "Unpick a course from a term",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "integer"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Removed (or no-op)"}
                }
            }
        },
        "/api/v1/terms": {
            "get": {
                "tags": ["Selection"],
                "summary": "Known terms",
                "responses": {
                    "200": {"description": "Term list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/terms/{term}/layout": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Grid placements for a term",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Slot placements", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/export/ics": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Export the picked schedule as iCalendar text",
                "responses": {
                    "200": {"description": "text/calendar payload"}
                }
            }
        },
        "/api/v1/schedule/import/ics": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Parse previously exported calendar text",
                "responses": {
                    "200": {"description": "Parsed events", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/terms/{term}/export/pdf": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Export a term's weekly grid as PDF",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "application/pdf payload"}
                }
            }
        },
        "/api/v1/schedule/export/csv": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Export the picked course list as CSV",
                "responses": {
                    "200": {"description": "text/csv payload"}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
