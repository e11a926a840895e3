// Package docs holds the OpenAPI description served under /api/swagger.
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
        "/api/products": {
            "get": {
                "description": "Filters combine with AND. Price bounds are inclusive, search is a case-insensitive substring of the name.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Name substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "Comma-separated categories, any match", "name": "categories", "in": "query"},
                    {"type": "number", "description": "Lowest price", "name": "minPrice", "in": "query"},
                    {"type": "number", "description": "Highest price", "name": "maxPrice", "in": "query"},
                    {"type": "string", "description": "Field to sort by", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortOrder", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/inventory.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "Product payload", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.ProductInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/inventory.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/api/products/category/{category}": {
            "get": {
                "description": "Exact, case-sensitive match.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products in a category",
                "parameters": [
                    {"type": "string", "description": "Category", "name": "category", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/inventory.Product"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get product by ID",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Only name, category, price and description can change.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.ProductUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/inventory.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/api/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List all orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Order"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stock is checked and decremented item by item. A failing item does not restore stock taken for earlier items.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "Order payload", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.OrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        },
        "/api/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get order by ID",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Order"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/controllers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "controllers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "inventory.Product": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantity": {"type": "integer"}
            }
        },
        "inventory.ProductInput": {
            "type": "object",
            "required": ["category", "name", "price", "quantity"],
            "properties": {
                "category": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantity": {"type": "integer"}
            }
        },
        "inventory.ProductUpdate": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "domain.LineItem": {
            "type": "object",
            "properties": {
                "price": {"type": "number"},
                "productId": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "domain.LineItemRequest": {
            "type": "object",
            "required": ["price", "productId"],
            "properties": {
                "price": {"type": "number"},
                "productId": {"type": "string"},
                "quantity": {"type": "integer", "minimum": 1, "default": 1}
            }
        },
        "domain.Order": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "address": {"type": "string"},
                "cardPayment": {"type": "boolean"},
                "cashOnDelivery": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/domain.LineItem"}},
                "total": {"type": "number"}
            }
        },
        "domain.OrderRequest": {
            "type": "object",
            "required": ["address", "email", "name", "phoneNumber", "products", "total"],
            "properties": {
                "address": {"type": "string"},
                "cardPayment": {"type": "boolean"},
                "cashOnDelivery": {"type": "boolean"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/domain.LineItemRequest"}},
                "total": {"type": "number"}
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
	Title:            "Shop API",
	Description:      "Products and orders backed by MongoDB.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
