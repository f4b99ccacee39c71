package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Print Request API",
        "description": "Copy request intake and printing room workflow",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Requests",
            "description": "Teacher submissions and printable forms"
        },
        {
            "name": "Drafts",
            "description": "Server-side intake forms"
        },
        {
            "name": "Staff",
            "description": "Printing room workflow"
        },
        {
            "name": "Dashboard",
            "description": "Staff dashboard sessions"
        },
        {
            "name": "Exports",
            "description": "CSV and PDF exports"
        },
        {
            "name": "Authentication",
            "description": "Staff passcode login"
        },
        {
            "name": "System",
            "description": "Probes and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Not ready"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/api/v1/auth/staff/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Staff login",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StaffLoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Wrong passcode",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/requests": {
            "post": {
                "tags": [
                    "Requests"
                ],
                "summary": "Submit a print request",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubmitPrintRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Id collision",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/requests/{id}/printable": {
            "get": {
                "tags": [
                    "Requests"
                ],
                "summary": "Printable form content",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/requests/{id}/printable.pdf": {
            "get": {
                "tags": [
                    "Requests"
                ],
                "summary": "Printable form as PDF",
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "PDF"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/api/v1/drafts": {
            "post": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Start an intake form",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/drafts/{id}": {
            "get": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Get an intake form",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Edit header fields",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DraftHeaderPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/drafts/{id}/rows": {
            "post": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Append a distribution row",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/drafts/{id}/rows/{rowId}": {
            "patch": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Edit a distribution row",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "rowId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DraftRowPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Remove a distribution row",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "rowId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/drafts/{id}/submit": {
            "post": {
                "tags": [
                    "Drafts"
                ],
                "summary": "Submit an intake form",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/exports/{token}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download a published export",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "404": {
                        "description": "Invalid or expired link"
                    }
                }
            }
        },
        "/api/v1/staff/requests": {
            "get": {
                "tags": [
                    "Staff"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List requests",
                "parameters": [
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "type": "integer",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/requests/{id}": {
            "get": {
                "tags": [
                    "Staff"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Look up a request by id",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Request ID not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "Staff"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Record staff fields",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StaffUpdateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/requests/{id}/photos/{slot}": {
            "post": {
                "tags": [
                    "Staff"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Record a meter photo",
                "consumes": [
                    "multipart/form-data",
                    "application/json",
                    "image/jpeg",
                    "image/png"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "slot",
                        "in": "path",
                        "type": "string",
                        "enum": [
                            "before",
                            "after"
                        ],
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Already recorded or completed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "Before photo required first",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/requests/{id}/complete": {
            "post": {
                "tags": [
                    "Staff"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mark a job complete",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "Both meter photos are required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/scan": {
            "post": {
                "tags": [
                    "Staff"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Read a request id from a camera frame",
                "consumes": [
                    "multipart/form-data",
                    "application/json",
                    "image/jpeg",
                    "image/png"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "No barcode",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "501": {
                        "description": "Scanner unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/sessions": {
            "post": {
                "tags": [
                    "Dashboard"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Open a dashboard session",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/sessions/{sid}": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Current dashboard state",
                "parameters": [
                    {
                        "name": "sid",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Dashboard"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Close a dashboard session",
                "parameters": [
                    {
                        "name": "sid",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Closed"
                    }
                }
            }
        },
        "/api/v1/staff/sessions/{sid}/search": {
            "put": {
                "tags": [
                    "Dashboard"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update the search box",
                "parameters": [
                    {
                        "name": "sid",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/DashboardSearchRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/sessions/{sid}/complete": {
            "post": {
                "tags": [
                    "Dashboard"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Complete the selected job",
                "parameters": [
                    {
                        "name": "sid",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "412": {
                        "description": "Nothing selected or photos missing",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/staff/export.csv": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Download all requests as CSV",
                "produces": [
                    "text/csv"
                ],
                "responses": {
                    "200": {
                        "description": "CSV"
                    },
                    "409": {
                        "description": "No requests to export"
                    }
                }
            }
        },
        "/api/v1/staff/export.pdf": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Download all requests as PDF",
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "PDF"
                    },
                    "409": {
                        "description": "No requests to export"
                    }
                }
            }
        },
        "/api/v1/staff/exports": {
            "post": {
                "tags": [
                    "Exports"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Publish an export behind a signed link",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PublishExportRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "No requests to export",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "ClassRequestInput": {
            "type": "object",
            "properties": {
                "form": {
                    "type": "string"
                },
                "className": {
                    "type": "string"
                },
                "teacherInCharge": {
                    "type": "string"
                },
                "noOfCopies": {
                    "type": "integer"
                }
            }
        },
        "SubmitPrintRequest": {
            "type": "object",
            "properties": {
                "class": {
                    "type": "string"
                },
                "teacherInCharge": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "dateOfSubmission": {
                    "type": "string"
                },
                "dateOfCollection": {
                    "type": "string"
                },
                "noOfPagesOriginal": {
                    "type": "integer"
                },
                "noOfCopies": {
                    "type": "integer"
                },
                "sides": {
                    "type": "string",
                    "enum": [
                        "SINGLE",
                        "DOUBLE"
                    ]
                },
                "stapling": {
                    "type": "string",
                    "enum": [
                        "STAPLED",
                        "NONE"
                    ]
                },
                "paper": {
                    "type": "string",
                    "enum": [
                        "WHITE",
                        "NEWSPRINT"
                    ]
                },
                "remarks": {
                    "type": "string"
                },
                "signature": {
                    "type": "string"
                },
                "classRequests": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ClassRequestInput"
                    }
                }
            }
        },
        "DraftHeaderPatch": {
            "type": "object",
            "properties": {
                "class": {
                    "type": "string"
                },
                "teacherInCharge": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "dateOfSubmission": {
                    "type": "string"
                },
                "dateOfCollection": {
                    "type": "string"
                },
                "noOfPagesOriginal": {
                    "type": "integer"
                },
                "noOfCopies": {
                    "type": "integer"
                },
                "sides": {
                    "type": "string"
                },
                "stapling": {
                    "type": "string"
                },
                "paper": {
                    "type": "string"
                },
                "remarks": {
                    "type": "string"
                },
                "signature": {
                    "type": "string"
                }
            }
        },
        "DraftRowPatch": {
            "type": "object",
            "properties": {
                "form": {
                    "type": "string"
                },
                "className": {
                    "type": "string"
                },
                "teacherInCharge": {
                    "type": "string"
                },
                "noOfCopies": {
                    "type": "integer"
                }
            }
        },
        "StaffUpdateRequest": {
            "type": "object",
            "properties": {
                "adjustedCopies": {
                    "type": "integer"
                },
                "staffRemarks": {
                    "type": "string"
                },
                "ricohPages": {
                    "type": "integer"
                },
                "toshibaPages": {
                    "type": "integer"
                }
            }
        },
        "DashboardSearchRequest": {
            "type": "object",
            "properties": {
                "query": {
                    "type": "string"
                }
            }
        },
        "PublishExportRequest": {
            "type": "object",
            "required": [
                "format"
            ],
            "properties": {
                "format": {
                    "type": "string",
                    "enum": [
                        "csv",
                        "pdf"
                    ]
                }
            }
        },
        "StaffLoginRequest": {
            "type": "object",
            "required": [
                "name",
                "passcode"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "passcode": {
                    "type": "string"
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
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
