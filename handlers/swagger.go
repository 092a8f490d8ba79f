package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>folio API · Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "folio", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } },
      "PortfolioItem": { "type": "object", "properties": {
        "id": {"type":"string"}, "title": {"type":"string"}, "description": {"type":"string"},
        "image": {"type":"string"}, "link": {"type":"string"},
        "type": {"type":"string","enum":["web","mobile","design"]}, "isFeatured": {"type":"boolean"},
        "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "PortfolioForm": { "type": "object", "properties": {
        "title": {"type":"string"}, "description": {"type":"string"}, "type": {"type":"string"},
        "link": {"type":"string"}, "isFeatured": {"type":"string"}, "image": {"type":"string","format":"binary"} } },
      "Achievement": { "type": "object", "properties": {
        "id": {"type":"string"}, "year": {"type":"integer"}, "items": {"type":"array","items":{"type":"string"}},
        "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "AchievementInput": { "type": "object", "required": ["year","items"], "properties": {
        "year": {"type":"integer"}, "items": {"type":"array","items":{"type":"string"}} } },
      "ContactMessage": { "type": "object", "properties": {
        "id": {"type":"string"}, "name": {"type":"string"}, "email": {"type":"string"}, "subject": {"type":"string"},
        "message": {"type":"string"}, "isRead": {"type":"boolean"}, "createdAt": {"type":"string","format":"date-time"} } }
    }
  },
  "paths": {
    "/api/auth/login": {
      "post": {
        "summary": "Exchange admin credentials for a token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "{token}" }, "401": { "description": "Invalid credentials" } }
      }
    },
    "/api/auth/verify": {
      "get": { "summary": "Check a token", "security": [{"bearer":[]}], "responses": { "200": { "description": "{valid,user}" }, "401": { "description": "invalid token" } } }
    },
    "/api/portfolio": {
      "get": {
        "summary": "List portfolio items",
        "parameters": [
          {"name":"type","in":"query","schema":{"type":"string","enum":["all","web","mobile","design"]}},
          {"name":"search","in":"query","schema":{"type":"string"}},
          {"name":"sortBy","in":"query","schema":{"type":"string","enum":["createdAt","title"]}},
          {"name":"featured","in":"query","schema":{"type":"boolean"}}
        ],
        "responses": { "200": { "description": "items", "content": {"application/json":{"schema":{"type":"array","items":{"$ref":"#/components/schemas/PortfolioItem"}}}} } }
      },
      "post": {
        "summary": "Create a portfolio item", "security": [{"bearer":[]}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"$ref":"#/components/schemas/PortfolioForm"} } } },
        "responses": { "201": { "description": "created" }, "400": { "description": "validation or upload error" }, "401": { "description": "unauthenticated" } }
      }
    },
    "/api/portfolio/{id}": {
      "get": { "summary": "Get a portfolio item", "responses": { "200": { "description": "item" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a portfolio item", "security": [{"bearer":[]}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"$ref":"#/components/schemas/PortfolioForm"} } } },
        "responses": { "200": { "description": "updated" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a portfolio item", "security": [{"bearer":[]}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/achievements": {
      "get": { "summary": "List achievements, newest year first", "responses": { "200": { "description": "achievements" } } },
      "post": { "summary": "Create an achievement", "security": [{"bearer":[]}],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/AchievementInput"} } } },
        "responses": { "201": { "description": "created" } } }
    },
    "/api/achievements/{id}": {
      "get": { "summary": "Get an achievement", "responses": { "200": { "description": "achievement" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace an achievement", "security": [{"bearer":[]}],
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/AchievementInput"} } } },
        "responses": { "200": { "description": "updated" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete an achievement", "security": [{"bearer":[]}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/contact": {
      "post": { "summary": "Send a contact message",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","message"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"subject":{"type":"string"},"message":{"type":"string"}}}}}},
        "responses": { "201": { "description": "Message sent successfully" }, "400": { "description": "validation error" }, "429": { "description": "rate limited" } } },
      "get": { "summary": "List contact messages", "security": [{"bearer":[]}], "responses": { "200": { "description": "messages" } } }
    },
    "/api/contact/{id}": {
      "get": { "summary": "Get a contact message", "security": [{"bearer":[]}], "responses": { "200": { "description": "message" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a contact message", "security": [{"bearer":[]}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/contact/{id}/read": {
      "put": { "summary": "Mark a contact message read", "security": [{"bearer":[]}], "responses": { "200": { "description": "message" }, "404": { "description": "not found" } } }
    },
    "/uploads/{key}": { "get": { "summary": "Fetch an uploaded image", "responses": { "200": { "description": "image bytes" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
