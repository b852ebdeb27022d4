// Package docs registra en swag el documento OpenAPI servido en /swagger.
// Se mantiene a mano: al cambiar una anotación @ de los handlers hay que reflejarla acá.
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
        "/api/key": {
            "get": {
                "description": "Devuelve la key asociada a username/password. Comparación exacta contra la tabla estática de credenciales.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtener auth key",
                "parameters": [
                    {"type": "string", "description": "Nombre de usuario", "name": "username", "in": "query", "required": true},
                    {"type": "string", "description": "Contraseña", "name": "password", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/credentials.keyResponse"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/credentials.errorResponse"}},
                    "422": {"description": "faltan parámetros", "schema": {"$ref": "#/definitions/credentials.errorResponse"}}
                }
            }
        },
        "/api/create_pet_simple": {
            "post": {
                "description": "Alta sin foto con parámetros de query. No valida nombre duplicado ni límite de mascotas por dueño.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota (simple)",
                "parameters": [
                    {"type": "string", "description": "Auth key", "name": "auth-key", "in": "header", "required": true},
                    {"type": "string", "description": "dog, cat, bird, fish, rabbit, hamster, turtle, parrot, other", "name": "animal_type", "in": "query", "required": true},
                    {"type": "string", "description": "2 a 50 caracteres (se recortan espacios)", "name": "name", "in": "query", "required": true},
                    {"type": "integer", "description": "0 a 100", "name": "age", "in": "query", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "validación", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "401": {"description": "Invalid auth_key", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "422": {"description": "parámetros faltantes o age no entero", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/api/pets": {
            "get": {
                "description": "Sin filter_type (o filter_type=my_pets) devuelve sólo las mascotas del dueño de la key, en orden de alta. Cualquier otro valor devuelve todas.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas",
                "parameters": [
                    {"type": "string", "description": "Auth key", "name": "auth-key", "in": "header", "required": true},
                    {"type": "string", "description": "my_pets (default) u otro valor para todas", "name": "filter_type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "Invalid auth_key", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "post": {
                "description": "Alta por multipart. Rechaza nombre repetido (sin distinguir mayúsculas) y más de 10 mascotas por dueño. La foto (jpg, jpeg, png, gif, bmp; máx 5MB) se guarda en disco y se devuelve su path.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota (con foto opcional)",
                "parameters": [
                    {"type": "string", "description": "Auth key", "name": "auth-key", "in": "header", "required": true},
                    {"type": "string", "description": "Tipo de animal", "name": "animal_type", "in": "formData", "required": true},
                    {"type": "string", "description": "Nombre", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "description": "Edad", "name": "age", "in": "formData", "required": true},
                    {"type": "file", "description": "Foto", "name": "pet_photo", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.createdPetResponse"}},
                    "400": {"description": "validación / duplicado / límite / archivo inválido", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "401": {"description": "Invalid auth_key", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "422": {"description": "form incompleto", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "500": {"description": "Error processing file", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/api/pets/set_photo/{pet_id}": {
            "post": {
                "description": "Sólo el dueño. Acepta jpg, jpeg o png hasta 10MB. Guarda una copia en disco y almacena la foto como data URL base64.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Cambiar foto de la mascota",
                "parameters": [
                    {"type": "string", "description": "Auth key", "name": "auth-key", "in": "header", "required": true},
                    {"type": "string", "description": "ID de la mascota", "name": "pet_id", "in": "path", "required": true},
                    {"type": "file", "description": "Foto", "name": "pet_photo", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.photoResponse"}},
                    "400": {"description": "tipo o tamaño inválido", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "401": {"description": "Invalid auth_key", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "403": {"description": "Permission denied", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Pet not found", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "422": {"description": "falta pet_photo", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "500": {"description": "Error processing file", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/api/pets/{pet_id}": {
            "put": {
                "description": "Sólo el dueño. Los campos enviados se guardan tal cual, sin validación; updated_at no cambia.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar mascota",
                "parameters": [
                    {"type": "string", "description": "Auth key", "name": "auth-key", "in": "header", "required": true},
                    {"type": "string", "description": "ID de la mascota", "name": "pet_id", "in": "path", "required": true},
                    {"type": "string", "description": "Nuevo nombre", "name": "name", "in": "query"},
                    {"type": "integer", "description": "Nueva edad", "name": "age", "in": "query"},
                    {"type": "string", "description": "Nuevo tipo", "name": "animal_type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "401": {"description": "Invalid auth_key", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "403": {"description": "Permission denied", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Pet not found", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "422": {"description": "age no entero", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "delete": {
                "description": "Sólo el dueño. Devuelve el registro borrado.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Borrar mascota",
                "parameters": [
                    {"type": "string", "description": "Auth key", "name": "auth-key", "in": "header", "required": true},
                    {"type": "string", "description": "ID de la mascota", "name": "pet_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.deleteResponse"}},
                    "401": {"description": "Invalid auth_key", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "403": {"description": "You don't have permission to delete this pet", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Pet not found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "credentials.errorResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "credentials.keyResponse": {
            "type": "object",
            "properties": {"key": {"type": "string"}}
        },
        "pets.createdPetResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "animal_type": {"type": "string"},
                "created_at": {"type": "string"},
                "name": {"type": "string"},
                "pet_id": {"type": "string"},
                "pet_photo": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "pets.deleteResponse": {
            "type": "object",
            "properties": {
                "deleted_pet": {"$ref": "#/definitions/pets.petResponse"},
                "message": {"type": "string"}
            }
        },
        "pets.errorResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "animal_type": {"type": "string"},
                "created_at": {"type": "string"},
                "name": {"type": "string"},
                "pet_id": {"type": "string"},
                "pet_photo": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "pets.photoResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "animal_type": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "pet_photo": {"type": "string"},
                "user_id": {"type": "string"}
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
	Title:            "Pet Registry API",
	Description:      "Registro de mascotas con auth por key estática y fotos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
