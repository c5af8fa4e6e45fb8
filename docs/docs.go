// Package docs holds the Swagger 2.0 document served at /swagger in dev mode.
// It is maintained by hand next to the handler annotations; main_test.go fails
// when a registered route is missing here.
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
                "summary": "Issue an admin token",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account (admin)",
                "parameters": [
                    {"description": "account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/auth/accounts/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["auth"],
                "summary": "Delete an account (admin)",
                "parameters": [
                    {"type": "string", "description": "account id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/holders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["holders"],
                "summary": "List holders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/holders.ListHoldersResult"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["holders"],
                "summary": "Register a holder (admin)",
                "parameters": [
                    {"description": "holder", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/holders.CreateHolderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/holders.HolderResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/holders/{holder_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["holders"],
                "summary": "One holder",
                "parameters": [
                    {"type": "string", "description": "holder id", "name": "holder_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/holders.HolderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["holders"],
                "summary": "Delete a holder with nothing on loan (admin)",
                "parameters": [
                    {"type": "string", "description": "holder id", "name": "holder_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/items.CategoryResponse"}}}
                }
            }
        },
        "/categories/{code}/items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Items of one category",
                "parameters": [
                    {"type": "string", "description": "category code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/items.ListItemsResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Add an item to a category (admin)",
                "parameters": [
                    {"type": "string", "description": "category code", "name": "code", "in": "path", "required": true},
                    {"description": "item", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/items.CreateItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/items.ItemResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/items/{item_id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["items"],
                "summary": "Delete an item that is not on loan (admin)",
                "parameters": [
                    {"type": "string", "description": "item id", "name": "item_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Full loan log",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/history.LoanRecord"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Lend items to a holder",
                "parameters": [
                    {"description": "loan", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/history.LoanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/history.LoanResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Delete every record (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loans.DeleteAllResult"}}
                }
            }
        },
        "/history/active": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Active loans grouped by transaction",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/history.LoanGroup"}}}
                }
            }
        },
        "/history/return-multiple": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Return several records of one holder",
                "parameters": [
                    {"description": "records", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loans.ReturnMultipleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/history.ReturnResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/history/{record_id}/return": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Return one record",
                "parameters": [
                    {"type": "string", "description": "record id", "name": "record_id", "in": "path", "required": true},
                    {"description": "credential", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loans.ReturnOneRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/history.ReturnResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/history/{record_id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["history"],
                "summary": "Delete one record (admin)",
                "parameters": [
                    {"type": "string", "description": "record id", "name": "record_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/favorites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "List saved item lists",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/favorites.ListListsResult"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Save an item list for a holder",
                "parameters": [
                    {"description": "list", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/favorites.CreateListRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/favorites.ListSummary"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/favorites/{list_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "One list with the loan state of its items",
                "parameters": [
                    {"type": "string", "description": "list id", "name": "list_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/favorites.ListDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Rename a list or replace its items",
                "parameters": [
                    {"type": "string", "description": "list id", "name": "list_id", "in": "path", "required": true},
                    {"description": "list", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/favorites.UpdateListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/favorites.ListSummary"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "tags": ["favorites"],
                "summary": "Delete a list on its holder's password",
                "parameters": [
                    {"type": "string", "description": "list id", "name": "list_id", "in": "path", "required": true},
                    {"description": "credential", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/favorites.DeleteListRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        },
        "/admin/favorites/{list_id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["favorites"],
                "summary": "Delete any list (admin)",
                "parameters": [
                    {"type": "string", "description": "list id", "name": "list_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorDTO"}}
                }
            }
        }
    },
    "definitions": {
        "errorDTO": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "holders.CreateHolderRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "holders.HolderResponse": {
            "type": "object",
            "properties": {
                "holder_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "created_at": {"type": "string"},
                "active_loans": {"type": "integer"}
            }
        },
        "holders.ListHoldersResult": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/holders.HolderResponse"}},
                "total": {"type": "integer"}
            }
        },
        "items.CategoryResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "items.CreateItemRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "extra": {"type": "string"}
            }
        },
        "items.ItemResponse": {
            "type": "object",
            "properties": {
                "item_id": {"type": "string"},
                "category_code": {"type": "string"},
                "name": {"type": "string"},
                "extra": {"type": "string"},
                "created_at": {"type": "string"},
                "on_loan": {"type": "boolean"}
            }
        },
        "items.ListItemsResult": {
            "type": "object",
            "properties": {
                "category": {"$ref": "#/definitions/items.CategoryResponse"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/items.ItemResponse"}},
                "total": {"type": "integer"},
                "on_loan": {"type": "integer"}
            }
        },
        "history.LoanRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "holder_id": {"type": "string"},
                "holder_name": {"type": "string"},
                "item_id": {"type": "string"},
                "item_name": {"type": "string"},
                "item_extra": {"type": "string"},
                "category_id": {"type": "string"},
                "acquired_at": {"type": "string"},
                "returned": {"type": "boolean"},
                "returned_at": {"type": "string"},
                "comment": {"type": "string"}
            }
        },
        "history.LoanGroup": {
            "type": "object",
            "properties": {
                "holder_id": {"type": "string"},
                "holder_name": {"type": "string"},
                "acquired_at": {"type": "string"},
                "comment": {"type": "string"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/history.LoanRecord"}}
            }
        },
        "history.LoanRequest": {
            "type": "object",
            "properties": {
                "holder_id": {"type": "string"},
                "holder_password": {"type": "string"},
                "item_ids": {"type": "array", "items": {"type": "string"}},
                "comment": {"type": "string"}
            }
        },
        "history.LoanResult": {
            "type": "object",
            "properties": {
                "record_ids": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "history.ReturnResult": {
            "type": "object",
            "properties": {
                "returned": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "loans.ReturnMultipleRequest": {
            "type": "object",
            "properties": {
                "record_ids": {"type": "array", "items": {"type": "string"}},
                "holder_password": {"type": "string"}
            }
        },
        "loans.ReturnOneRequest": {
            "type": "object",
            "properties": {
                "holder_password": {"type": "string"}
            }
        },
        "loans.DeleteAllResult": {
            "type": "object",
            "properties": {
                "deleted": {"type": "integer"}
            }
        },
        "favorites.CreateListRequest": {
            "type": "object",
            "properties": {
                "holder_id": {"type": "string"},
                "holder_password": {"type": "string"},
                "name": {"type": "string"},
                "item_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "favorites.UpdateListRequest": {
            "type": "object",
            "properties": {
                "holder_password": {"type": "string"},
                "name": {"type": "string"},
                "item_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "favorites.DeleteListRequest": {
            "type": "object",
            "properties": {
                "holder_password": {"type": "string"}
            }
        },
        "favorites.ListSummary": {
            "type": "object",
            "properties": {
                "list_id": {"type": "string"},
                "name": {"type": "string"},
                "holder_id": {"type": "string"},
                "holder_name": {"type": "string"},
                "item_count": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        },
        "favorites.ListItem": {
            "type": "object",
            "properties": {
                "item_id": {"type": "string"},
                "category_code": {"type": "string"},
                "name": {"type": "string"},
                "extra": {"type": "string"},
                "on_loan": {"type": "boolean"}
            }
        },
        "favorites.ListDetail": {
            "type": "object",
            "properties": {
                "list_id": {"type": "string"},
                "name": {"type": "string"},
                "holder_id": {"type": "string"},
                "holder_name": {"type": "string"},
                "updated_at": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/favorites.ListItem"}},
                "available": {"type": "integer"}
            }
        },
        "favorites.ListListsResult": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/favorites.ListSummary"}},
                "total": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Loan tracker API",
	Description:      "Holders, items, saved item lists and the loan history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
