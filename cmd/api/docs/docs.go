// Package docs registers the Swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/quizzes": {
            "post": {
                "description": "Extracts the text of a PDF with fewer than 10 pages and asks the model for multiple-choice questions",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Generate a quiz from a PDF",
                "parameters": [
                    {"type": "file", "description": "PDF document", "name": "pdf", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}": {
            "get": {
                "description": "Returns the current view of a quiz session",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Get a quiz session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Clears the questions, score and file so a new PDF can be uploaded",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Discard a quiz session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}/selection": {
            "put": {
                "description": "Records the option chosen for the current question; it can be changed until submitted",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Select an option",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "Selected option", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectOptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{id}/submit": {
            "post": {
                "description": "Scores the selected option and moves to the next question or to the result",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Submit the selected option",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.AnsweredQuestionView": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "is_correct": {"type": "boolean"},
                "options": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"},
                "selected": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "llm_provider": {"type": "string"},
                "session_store": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.QuestionView": {
            "description": "Current question",
            "type": "object",
            "properties": {
                "options": {"type": "array", "items": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "dto.QuizView": {
            "description": "Quiz session view",
            "type": "object",
            "properties": {
                "file_name": {"type": "string"},
                "id": {"type": "string"},
                "percentage": {"type": "integer"},
                "question": {"$ref": "#/definitions/dto.QuestionView"},
                "question_number": {"type": "integer"},
                "review": {"type": "array", "items": {"$ref": "#/definitions/dto.AnsweredQuestionView"}},
                "score": {"type": "integer"},
                "selected_option": {"type": "string"},
                "state": {"type": "string"},
                "submit_enabled": {"type": "boolean"},
                "submit_label": {"type": "string"},
                "title": {"type": "string"},
                "total_questions": {"type": "integer"}
            }
        },
        "dto.SelectOptionRequest": {
            "description": "Request body for selecting an option",
            "type": "object",
            "required": ["option"],
            "properties": {
                "option": {"type": "string", "maxLength": 1000}
            }
        },
        "dto.UploadResponse": {
            "description": "Upload result",
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "quiz": {"$ref": "#/definitions/dto.QuizView"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "PDF Quiz API",
	Description:      "Upload a short PDF and take a multiple-choice quiz generated from its text.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
