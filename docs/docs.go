// Package docs registra la definición OpenAPI del API en swag.
// Se regenera con `swag init -g cmd/api/main.go`.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/sessions.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Cerrar sesión",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Owner de la sesión actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/owners/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Registrar owner",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/owners.registerOwnerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/owners/{ownerId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Ver owner",
                "parameters": [{"type": "string", "name": "ownerId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Actualizar owner (parcial)",
                "parameters": [{"type": "string", "name": "ownerId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/owners.OwnerResponse"}},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "tags": ["owners"],
                "summary": "Borrar owner con sus mascotas",
                "parameters": [{"type": "string", "name": "ownerId", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/owners/{ownerId}/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas del owner",
                "parameters": [{"type": "string", "name": "ownerId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "owner not found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"type": "string", "name": "ownerId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/owners/{ownerId}/pets/{petId}/photo": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Subir foto (JPEG/PNG, max 5MB)",
                "parameters": [
                    {"type": "string", "name": "ownerId", "in": "path", "required": true},
                    {"type": "string", "name": "petId", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "413": {"description": "Request Entity Too Large"}
                }
            }
        },
        "/owners/{ownerId}/pets/{petId}/qr-code": {
            "get": {
                "produces": ["image/png"],
                "tags": ["pets"],
                "summary": "QR de mascota perdida",
                "parameters": [
                    {"type": "string", "name": "ownerId", "in": "path", "required": true},
                    {"type": "string", "name": "petId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "PNG"}}
            }
        },
        "/owners/{ownerId}/pets/{petId}/feeding-schedules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["feeding"],
                "summary": "Listar horarios de comida (ordenados por hora)",
                "parameters": [
                    {"type": "string", "name": "ownerId", "in": "path", "required": true},
                    {"type": "string", "name": "petId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/feeding.scheduleResponse"}}}}
            }
        },
        "/owners/{ownerId}/pets/{petId}/medications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Listar medicaciones",
                "parameters": [
                    {"type": "string", "name": "ownerId", "in": "path", "required": true},
                    {"type": "string", "name": "petId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medications.medicationResponse"}}}}
            }
        },
        "/owners/{ownerId}/pets/{petId}/vet-visits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vet-visits"],
                "summary": "Listar visitas al veterinario (más reciente primero)",
                "parameters": [
                    {"type": "string", "name": "ownerId", "in": "path", "required": true},
                    {"type": "string", "name": "petId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/vetvisits.visitResponse"}}}}
            }
        }
    },
    "definitions": {
        "sessions.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "owners.registerOwnerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "owners.OwnerResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "birthDate": {"type": "string", "example": "2020-05-01"},
                "weight": {"type": "number"},
                "weightUnit": {"type": "string", "enum": ["KG", "LB"]},
                "activityLevel": {"type": "string", "enum": ["LOW", "MODERATE", "HIGH"]}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "ownerId": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "birthDate": {"type": "string"},
                "weight": {"type": "number"},
                "weightUnit": {"type": "string"},
                "activityLevel": {"type": "string"},
                "photoUrl": {"type": "string"}
            }
        },
        "feeding.scheduleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "petId": {"type": "string"},
                "time": {"type": "string", "example": "08:00"},
                "foodType": {"type": "string"},
                "quantity": {"type": "number"},
                "quantityUnit": {"type": "string", "enum": ["CUPS", "GRAMS", "OUNCES", "CANS"]}
            }
        },
        "medications.medicationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "petId": {"type": "string"},
                "name": {"type": "string"},
                "dosageAmount": {"type": "number"},
                "dosageUnit": {"type": "string"},
                "frequency": {"type": "string"},
                "timeToAdminister": {"type": "string", "example": "20:00"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"}
            }
        },
        "vetvisits.visitResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "petId": {"type": "string"},
                "visitDate": {"type": "string"},
                "nextVisitDate": {"type": "string"},
                "vetName": {"type": "string"},
                "reasonForVisit": {"type": "string"},
                "notes": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PetTrackr API",
	Description:      "Owners, mascotas, comidas, medicaciones y visitas al veterinario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
