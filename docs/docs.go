// Package docs содержит описание API для swag (обновляется через `swag init -g cmd/web/main.go`).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Регистрация",
                "parameters": [
                    {"description": "Email и пароль", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход",
                "parameters": [
                    {"description": "Email и пароль", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Выход: токен отзывается, cookie очищается",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/auth/upload-avatar": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Загрузка аватара",
                "parameters": [
                    {"type": "file", "description": "Изображение", "name": "avatar", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/resumes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["resumes"],
                "summary": "Список резюме текущего пользователя",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ResumeResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["resumes"],
                "summary": "Создать резюме",
                "parameters": [
                    {"description": "Черновик", "name": "resume", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResumeValues"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SaveResumeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/resumes/{id}": {
            "put": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["resumes"],
                "summary": "Сохранить резюме",
                "parameters": [
                    {"type": "string", "description": "ID резюме", "name": "id", "in": "path", "required": true},
                    {"description": "Черновик", "name": "resume", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResumeValues"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaveResumeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["resumes"],
                "summary": "Удалить резюме",
                "parameters": [
                    {"type": "string", "description": "ID резюме", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/resumes/{id}/sections/{step}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["resumes"],
                "summary": "Сохранить один шаг редактора",
                "parameters": [
                    {"type": "string", "description": "ID резюме", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "general-info, personal-info, career-goals, education, work-experience, skills, projects, hobbies", "name": "step", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/resumes/{id}/preview": {
            "get": {
                "produces": ["text/html"],
                "tags": ["resumes"],
                "summary": "Предпросмотр сохраненного резюме",
                "parameters": [
                    {"type": "string", "description": "ID резюме", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "blank, professional, creative, minimal", "name": "template", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML", "schema": {"type": "string"}}
                }
            }
        },
        "/api/v1/templates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["templates"],
                "summary": "Каталог шаблонов",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/templates.Template"}}}
                }
            }
        },
        "/api/v1/admin/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Список пользователей",
                "parameters": [
                    {"type": "integer", "description": "Страница", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Размер страницы", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Поиск по email и имени", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserListResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/dashboard/monthly": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Новые пользователи и резюме по месяцам",
                "parameters": [
                    {"type": "integer", "description": "Число месяцев (по умолчанию 6, не больше 24)", "name": "months", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/admin/cleanup-blobs": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Удалить неиспользуемые изображения",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CleanupResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperrors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "domain": {"type": "string"},
                "message": {"type": "string"},
                "details": {}
            }
        },
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/apperrors.AppError"}}
        },
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "avatarUrl": {"type": "string"},
                "createdAt": {"type": "string"},
                "resumeCount": {"type": "integer"}
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        },
        "dto.UploadResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "url": {"type": "string"},
                "path": {"type": "string"},
                "filename": {"type": "string"}
            }
        },
        "dto.CleanupResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "totalBlobs": {"type": "integer"},
                "usedBlobs": {"type": "integer"},
                "unusedBlobs": {"type": "integer"},
                "deletedSuccess": {"type": "integer"},
                "deletedFailed": {"type": "integer"}
            }
        },
        "dto.UserListResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "dto.WorkExperienceValues": {
            "type": "object",
            "properties": {
                "position": {"type": "string"},
                "company": {"type": "string"},
                "startDate": {"type": "string", "example": "2020-01-01"},
                "endDate": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.EducationValues": {
            "type": "object",
            "properties": {
                "degree": {"type": "string"},
                "school": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"}
            }
        },
        "dto.ProjectValues": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "role": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "description": {"type": "string"},
                "techStack": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.HobbyValues": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.ResumeValues": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "photo": {"type": "string", "x-nullable": true},
                "colorHex": {"type": "string", "example": "#2563eb"},
                "borderStyle": {"type": "string", "enum": ["square", "circle", "squircle"]},
                "templateType": {"type": "string", "enum": ["blank", "professional", "creative", "minimal"]},
                "summary": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "jobTitle": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "workExperiences": {"type": "array", "items": {"$ref": "#/definitions/dto.WorkExperienceValues"}},
                "educations": {"type": "array", "items": {"$ref": "#/definitions/dto.EducationValues"}},
                "projects": {"type": "array", "items": {"$ref": "#/definitions/dto.ProjectValues"}},
                "skills": {"type": "array", "items": {"type": "string"}},
                "hobbies": {"type": "array", "items": {"$ref": "#/definitions/dto.HobbyValues"}}
            }
        },
        "dto.ResumeResponse": {
            "allOf": [
                {"$ref": "#/definitions/dto.ResumeValues"},
                {"type": "object", "properties": {"createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}}
            ]
        },
        "dto.SaveResumeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "resume": {"$ref": "#/definitions/dto.ResumeResponse"}
            }
        },
        "templates.Template": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "thumbnail": {"type": "string"},
                "templateType": {"type": "string"},
                "data": {"$ref": "#/definitions/dto.ResumeValues"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cvbuilder API",
	Description:      "API конструктора резюме (документация Swagger).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
