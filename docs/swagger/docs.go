// Package swagger holds the generated OpenAPI document served at /swagger.
package swagger

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
		"/products": {
			"get": {
				"tags": [
					"inventory"
				],
				"summary": "List active products with stock",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			},
			"post": {
				"tags": [
					"inventory"
				],
				"summary": "Create a product",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/products/{id}": {
			"get": {
				"tags": [
					"inventory"
				],
				"summary": "Get a product",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true,
						"description": "Product ID"
					}
				]
			},
			"put": {
				"tags": [
					"inventory"
				],
				"summary": "Update a product",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true,
						"description": "Product ID"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"inventory"
				],
				"summary": "Deactivate a product",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true,
						"description": "Product ID"
					}
				]
			}
		},
		"/products/{id}/locations": {
			"put": {
				"tags": [
					"inventory"
				],
				"summary": "Replace product locations",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true,
						"description": "Product ID"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/products/{id}/on-hand/{locationId}": {
			"put": {
				"tags": [
					"inventory"
				],
				"summary": "Set on-hand quantity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true,
						"description": "Product ID"
					},
					{
						"name": "locationId",
						"in": "path",
						"type": "integer",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/entities/{kind}": {
			"get": {
				"tags": [
					"inventory"
				],
				"summary": "List reference entities",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "kind",
						"in": "path",
						"type": "string",
						"required": true,
						"description": "locations, material-types or vendors"
					}
				]
			},
			"post": {
				"tags": [
					"inventory"
				],
				"summary": "Create a reference entity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "kind",
						"in": "path",
						"type": "string",
						"required": true,
						"description": "locations, material-types or vendors"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/entities/{kind}/{id}": {
			"put": {
				"tags": [
					"inventory"
				],
				"summary": "Rename a reference entity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "kind",
						"in": "path",
						"type": "string",
						"required": true,
						"description": "locations, material-types or vendors"
					},
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"inventory"
				],
				"summary": "Delete a reference entity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "kind",
						"in": "path",
						"type": "string",
						"required": true,
						"description": "locations, material-types or vendors"
					},
					{
						"name": "id",
						"in": "path",
						"type": "integer",
						"required": true
					},
					{
						"name": "force",
						"in": "query",
						"type": "boolean",
						"required": false
					}
				]
			}
		},
		"/import": {
			"post": {
				"tags": [
					"importer"
				],
				"summary": "Commit an import",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/import/preview": {
			"post": {
				"tags": [
					"importer"
				],
				"summary": "Preview an import",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/import/plan": {
			"post": {
				"tags": [
					"importer"
				],
				"summary": "Show the full import plan",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/import/file": {
			"post": {
				"tags": [
					"importer"
				],
				"summary": "Import a CSV, TSV, XLSX or JSON file",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"name": "file",
						"in": "formData",
						"type": "file",
						"required": true
					},
					{
						"name": "mode",
						"in": "query",
						"type": "string",
						"required": false
					},
					{
						"name": "dry_run",
						"in": "query",
						"type": "boolean",
						"required": false
					}
				]
			}
		},
		"/purchase-list": {
			"get": {
				"tags": [
					"purchasing"
				],
				"summary": "Get the purchase list",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "fresh",
						"in": "query",
						"type": "boolean",
						"required": false
					}
				]
			}
		},
		"/purchase-list/text": {
			"get": {
				"tags": [
					"purchasing"
				],
				"summary": "Get the purchase list as plain text",
				"produces": [
					"text/plain"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "fresh",
						"in": "query",
						"type": "boolean",
						"required": false
					}
				]
			}
		},
		"/purchase-list/export": {
			"get": {
				"tags": [
					"purchasing"
				],
				"summary": "Export the purchase list as XLSX",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "archive",
						"in": "query",
						"type": "boolean",
						"required": false
					}
				]
			}
		},
		"/purchase-list/exports": {
			"get": {
				"tags": [
					"purchasing"
				],
				"summary": "List archived exports",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			},
			"delete": {
				"tags": [
					"purchasing"
				],
				"summary": "Prune archived exports",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "keep",
						"in": "query",
						"type": "integer",
						"required": false
					}
				]
			}
		},
		"/purchase-list/exports/download": {
			"get": {
				"tags": [
					"purchasing"
				],
				"summary": "Download an archived export",
				"produces": [
					"application/octet-stream"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "key",
						"in": "query",
						"type": "string",
						"required": true
					}
				]
			}
		},
		"/integrity": {
			"get": {
				"tags": [
					"integrity"
				],
				"summary": "Run all integrity checks",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			}
		},
		"/integrity/structure": {
			"get": {
				"tags": [
					"integrity"
				],
				"summary": "Check bucket folders",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				},
				"parameters": [
					{
						"name": "fix",
						"in": "query",
						"type": "boolean",
						"required": false
					}
				]
			}
		},
		"/integrity/schema": {
			"get": {
				"tags": [
					"integrity"
				],
				"summary": "Check database schema",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			}
		},
		"/integrity/catalog": {
			"get": {
				"tags": [
					"integrity"
				],
				"summary": "Check catalog consistency",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request"
					},
					"500": {
						"description": "Internal Server Error"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "X-API-Key",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PAR Manager API",
	Description:      "Catalog, purchase list and bulk import API for PAR stock management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
