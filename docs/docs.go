// Package docs registers the Swagger document served at /swagger/doc.json.
// It is written by hand and follows the handler annotations in internal/rest.
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
        "/v1/homepage": {
            "get": {
                "description": "Lead article, top stories, editor picks, flash news and category shelves. Cached.",
                "produces": ["application/json"],
                "tags": ["homepage"],
                "summary": "Homepage",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Homepage"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/v1/articles": {
            "get": {
                "description": "Published articles, newest first, optionally filtered by category and tag slug.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "List articles",
                "parameters": [
                    {"type": "string", "description": "Category slug", "name": "category", "in": "query"},
                    {"type": "string", "description": "Tag slug", "name": "tag", "in": "query"},
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default: 10, max: 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.ArticlePage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "New articles are drafts unless status is given. Tags are slugs.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cms"],
                "summary": "Create article",
                "parameters": [
                    {"description": "Article", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.ArticleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/v1/articles/trending": {
            "get": {
                "description": "Ten most viewed published articles.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Trending articles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/articles/featured": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Featured articles",
                "parameters": [
                    {"type": "integer", "description": "Number of articles (default: 5, max: 50)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/articles/{slug}": {
            "get": {
                "description": "Full published article with tags. include=related adds related articles. Counts a view.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Get article",
                "parameters": [
                    {"type": "string", "description": "Article slug", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "description": "related", "name": "include", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.Article"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/v1/articles/{slug}/related": {
            "get": {
                "description": "Up to five recent articles from the same category.",
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Related articles",
                "parameters": [
                    {"type": "string", "description": "Article slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/articles/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Authors may only update their own articles. Omitted tags keep the current ones.",
                "tags": ["cms"],
                "summary": "Update article",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.ArticleRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["cms"],
                "summary": "Delete article",
                "parameters": [
                    {"type": "integer", "description": "Article ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/search": {
            "get": {
                "description": "Case-insensitive substring search in title, excerpt and content of published articles.",
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search articles",
                "parameters": [
                    {"type": "string", "description": "Query, at least 2 characters", "name": "q", "in": "query", "required": true},
                    {"type": "string", "description": "Category slug", "name": "category", "in": "query"},
                    {"type": "string", "description": "Tag slug", "name": "tag", "in": "query"},
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size 1..50 (default: 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.SearchPage"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/rest.ErrorResponse"}}
                }
            }
        },
        "/v1/categories": {
            "get": {
                "description": "Active categories ordered by order. Cached.",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cms"],
                "summary": "Create category",
                "parameters": [
                    {"description": "Category", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.CategoryRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/v1/categories/{slug}": {
            "get": {
                "tags": ["categories"],
                "summary": "Get category",
                "parameters": [
                    {"type": "string", "description": "Category slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/categories/{slug}/articles": {
            "get": {
                "tags": ["categories"],
                "summary": "Category articles",
                "parameters": [
                    {"type": "string", "description": "Category slug", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default: 10, max: 50)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/categories/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["cms"],
                "summary": "Update category",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.CategoryRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Categories that still have articles are not deleted.",
                "tags": ["cms"],
                "summary": "Delete category",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/v1/tags": {
            "get": {
                "description": "Tags that have articles, most used first. Cached.",
                "tags": ["tags"],
                "summary": "List tags",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cms"],
                "summary": "Create tag",
                "parameters": [
                    {"description": "Tag", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.TagRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/v1/tags/{slug}": {
            "get": {
                "tags": ["tags"],
                "summary": "Get tag",
                "parameters": [
                    {"type": "string", "description": "Tag slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/tags/{slug}/articles": {
            "get": {
                "tags": ["tags"],
                "summary": "Tag articles",
                "parameters": [
                    {"type": "string", "description": "Tag slug", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default: 10, max: 50)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/tags/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["cms"],
                "summary": "Update tag",
                "parameters": [
                    {"type": "integer", "description": "Tag ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.TagRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["cms"],
                "summary": "Delete tag",
                "parameters": [
                    {"type": "integer", "description": "Tag ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"description": "New user", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.RegisterRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.LoginRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/refresh": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Refresh token", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/user": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/unlink-provider": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Unlink OAuth provider", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/password/forgot": {
            "post": {
                "description": "Always succeeds for a well-formed email.",
                "tags": ["auth"],
                "summary": "Request password reset",
                "parameters": [
                    {"description": "Email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.ForgotPasswordRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/password/reset": {
            "post": {
                "tags": ["auth"],
                "summary": "Reset password",
                "parameters": [
                    {"description": "Token and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.ResetPasswordRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/auth/{provider}": {
            "get": {
                "tags": ["auth"],
                "summary": "OAuth redirect URL",
                "parameters": [
                    {"type": "string", "description": "google or github", "name": "provider", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/{provider}/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "OAuth browser callback",
                "parameters": [
                    {"type": "string", "description": "google or github", "name": "provider", "in": "path", "required": true},
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query"},
                    {"type": "string", "description": "State from the redirect", "name": "state", "in": "query"}
                ],
                "responses": {"302": {"description": "Found"}}
            },
            "post": {
                "tags": ["auth"],
                "summary": "OAuth code exchange",
                "parameters": [
                    {"type": "string", "description": "google or github", "name": "provider", "in": "path", "required": true},
                    {"description": "Code and state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/rest.OAuthCallbackRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "rest.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "rest.CardAuthor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "rest.ArticleCard": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "href": {"type": "string"},
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "category": {"type": "string"},
                "categorySlug": {"type": "string"},
                "timestamp": {"type": "string"},
                "publishedAt": {"type": "string"},
                "image": {"type": "string"},
                "imageAlt": {"type": "string"},
                "author": {"$ref": "#/definitions/rest.CardAuthor"}
            }
        },
        "rest.Article": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "href": {"type": "string"},
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "content": {"type": "string"},
                "contentHtml": {"type": "string"},
                "category": {"type": "string"},
                "categorySlug": {"type": "string"},
                "timestamp": {"type": "string"},
                "publishedAt": {"type": "string"},
                "image": {"type": "string"},
                "imageAlt": {"type": "string"},
                "viewsCount": {"type": "integer"},
                "status": {"type": "string"},
                "isFeatured": {"type": "boolean"},
                "isEditorPick": {"type": "boolean"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleTag"}},
                "relatedArticles": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}},
                "metaTitle": {"type": "string"},
                "metaDescription": {"type": "string"},
                "metaKeywords": {"type": "array", "items": {"type": "string"}},
                "ogImage": {"type": "string"}
            }
        },
        "rest.ArticleTag": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "rest.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "hasNext": {"type": "boolean"},
                "hasPrev": {"type": "boolean"}
            }
        },
        "rest.ArticlePage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}},
                "pagination": {"$ref": "#/definitions/rest.Pagination"}
            }
        },
        "rest.SearchPage": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}},
                "pagination": {"$ref": "#/definitions/rest.Pagination"}
            }
        },
        "rest.Homepage": {
            "type": "object",
            "properties": {
                "leadArticle": {"$ref": "#/definitions/rest.ArticleCard"},
                "topStories": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}},
                "editorPicks": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}},
                "flashNews": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}},
                "decodeSections": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}}
            },
            "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/rest.ArticleCard"}}
        },
        "rest.CategoryRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "color": {"type": "string"},
                "order": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "rest.TagRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "rest.ArticleRequest": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "excerpt": {"type": "string"},
                "content": {"type": "string"},
                "category_id": {"type": "integer"},
                "featured_image": {"type": "string"},
                "image_alt": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "published", "archived"]},
                "is_featured": {"type": "boolean"},
                "is_editor_pick": {"type": "boolean"},
                "meta_title": {"type": "string"},
                "meta_description": {"type": "string"},
                "meta_keywords": {"type": "array", "items": {"type": "string"}},
                "og_image": {"type": "string"},
                "published_at": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "rest.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "password_confirmation": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "author"]}
            }
        },
        "rest.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "rest.ForgotPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "rest.ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "token": {"type": "string"},
                "password": {"type": "string"},
                "password_confirmation": {"type": "string"}
            }
        },
        "rest.OAuthCallbackRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "state": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "News CMS API",
	Description:      "Articles, categories, tags, homepage aggregation, search and authentication",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
