package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cohort Attendance API",
        "description": "Cohort enrollment, monthly attendance sheets and failed/completed promotion backed by CSV files",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Enrollments", "description": "Registration into cohorts and the master roster"},
        {"name": "Cohorts", "description": "Cohort records, deletion and waitlist admission"},
        {"name": "Schedule", "description": "Class dates per day pattern"},
        {"name": "Attendance", "description": "Monthly sheets, recalculation and outcome lists"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Data directory unavailable"}
                }
            }
        },
        "/api/v1/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List roster enrollments",
                "parameters": [
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "waitlisted", "failed", "completed"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Register a student; waitlisted once the cohort is full",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "VALIDATION_ERROR, or INVALID_PATTERN for an unsupported day pattern", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts": {
            "get": {
                "tags": ["Cohorts"],
                "summary": "List cohorts with seat counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{key}": {
            "get": {
                "tags": ["Cohorts"],
                "summary": "Get a cohort and its records",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "COHORT_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Cohorts"],
                "summary": "Save the edited records of a cohort",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceCohortRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Cohorts"],
                "summary": "Delete a cohort and its roster rows",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/cohorts/{key}/admissions": {
            "post": {
                "tags": ["Cohorts"],
                "summary": "Admit waitlisted students into free seats",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdmitWaitlistedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/dates": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List the class dates of a day pattern in a month",
                "parameters": [
                    {"name": "pattern", "in": "query", "required": true, "type": "string", "enum": ["Monday and Wednesday", "Tuesday and Thursday"]},
                    {"name": "month", "in": "query", "required": true, "type": "integer"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "INVALID_PATTERN", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{key}/sheets": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List the stored sheets of a cohort",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Generate a monthly sheet seeded with prior totals",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSheetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "COHORT_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Sheet already exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{key}/sheets/{period}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Get an attendance sheet",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Save marks, recalculate counts and promote students",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveSheetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "RECORD_NOT_FOUND", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete an attendance sheet",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/cohorts/{key}/sheets/{period}/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download an attendance sheet",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/api/v1/cohorts/{key}/sheets/{period}/outcomes/{kind}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Get a month's failed or completed list",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"},
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["failed", "completed"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Save an edited failed or completed list",
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"},
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["failed", "completed"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceOutcomesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/cohorts/{key}/sheets/{period}/outcomes/{kind}/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download a failed or completed list",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "key", "in": "path", "required": true, "type": "string"},
                    {"name": "period", "in": "path", "required": true, "type": "string"},
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["failed", "completed"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "guardian_name": {"type": "string"},
                "contact_number": {"type": "string"},
                "identity_number": {"type": "string"},
                "address": {"type": "string"},
                "student_name": {"type": "string"},
                "course": {"type": "string", "enum": ["Hardware", "English", "Computing"]},
                "day_pattern": {"type": "string", "enum": ["Monday and Wednesday", "Tuesday and Thursday"]},
                "time_slot": {"type": "string", "enum": ["7h", "13h", "20h"]},
                "start_date": {"type": "string", "example": "2024-03-04"}
            },
            "required": ["guardian_name", "contact_number", "identity_number", "student_name", "course", "day_pattern", "time_slot", "start_date"]
        },
        "Enrollment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "guardian_name": {"type": "string"},
                "contact_number": {"type": "string"},
                "identity_number": {"type": "string"},
                "city": {"type": "string"},
                "address": {"type": "string"},
                "student_name": {"type": "string"},
                "course": {"type": "string"},
                "day_pattern": {"type": "string"},
                "time_slot": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "status": {"type": "string"},
                "absences": {"type": "integer"},
                "cohort": {"type": "string"}
            }
        },
        "ReplaceCohortRequest": {
            "type": "object",
            "properties": {
                "enrollments": {"type": "array", "items": {"$ref": "#/definitions/Enrollment"}}
            }
        },
        "AdmitWaitlistedRequest": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string", "example": "2024-04-01"}
            },
            "required": ["start_date"]
        },
        "GenerateSheetRequest": {
            "type": "object",
            "properties": {
                "month": {"type": "integer"},
                "year": {"type": "integer"},
                "overwrite": {"type": "boolean"}
            },
            "required": ["month"]
        },
        "SheetRowInput": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "student_name": {"type": "string"},
                "absences": {"type": "integer"},
                "presences": {"type": "integer"},
                "marks": {"type": "object", "additionalProperties": {"type": "string", "enum": ["P", "A", "N"]}}
            },
            "required": ["id"]
        },
        "SaveSheetRequest": {
            "type": "object",
            "properties": {
                "rows": {"type": "array", "items": {"$ref": "#/definitions/SheetRowInput"}}
            }
        },
        "ReplaceOutcomesRequest": {
            "type": "object",
            "properties": {
                "rows": {"type": "array", "items": {"$ref": "#/definitions/SheetRowInput"}}
            }
        },
        "Notice": {
            "type": "object",
            "properties": {
                "level": {"type": "string", "enum": ["success", "warning"]},
                "message": {"type": "string"}
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
                "meta": {
                    "type": "object",
                    "properties": {
                        "notice": {"$ref": "#/definitions/Notice"}
                    }
                }
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
