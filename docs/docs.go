// Package docs Swagger文档(由swag init生成,handler注释修改后重新生成)
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
        "/api/v1/books": {
            "get": {
                "description": "按分区、学院、关键词过滤并排序,返回完整结果(不分页)",
                "produces": ["application/json"],
                "tags": ["目录"],
                "summary": "查询目录",
                "parameters": [
                    {"enum": ["new", "rare", "school", "restricted"], "type": "string", "description": "分区", "name": "section", "in": "query"},
                    {"enum": ["Gryffindor", "Slytherin", "Ravenclaw", "Hufflepuff"], "type": "string", "description": "学院", "name": "house", "in": "query"},
                    {"type": "string", "description": "关键词(书名、作者、简介)", "name": "q", "in": "query"},
                    {"enum": ["popular", "price", "year", "rarity"], "type": "string", "description": "排序方式", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "随机序号", "name": "nonce", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["目录"],
                "summary": "图书详情",
                "parameters": [{"type": "string", "example": "bk6", "description": "图书ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/facets": {
            "get": {
                "description": "分区(含图书数量)、学院、排序方式",
                "produces": ["application/json"],
                "tags": ["目录"],
                "summary": "过滤条件",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions": {
            "post": {
                "description": "返回会话令牌和初始视图(new分区、按人气排序、深色主题)",
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "创建浏览会话",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "当前会话",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "令牌加入黑名单,购物车和筛选条件一起丢弃",
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "结束会话",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/query": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "只修改请求中出现的字段",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "修改查询状态",
                "parameters": [{"description": "查询状态", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateQueryRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/shuffle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "随机",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "购物车",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/cart/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "不在购物车中则加入,已在则移出",
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "切换购物车",
                "parameters": [{"type": "string", "description": "图书ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/selection/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "打开图书详情",
                "parameters": [{"type": "string", "description": "图书ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/selection": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "关闭图书详情",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/theme": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "切换深色/浅色主题",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/sessions/me/actions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "按顺序应用,任何一个失败则整体不生效",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["会话"],
                "summary": "批量会话操作",
                "parameters": [{"description": "操作列表", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ApplyActionsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "dto.UpdateQueryRequest": {
            "type": "object",
            "properties": {
                "section": {"type": "string", "example": "rare"},
                "house": {"type": "string", "example": "Slytherin"},
                "search": {"type": "string", "maxLength": 100, "example": "kessel"},
                "sort": {"type": "string", "example": "price"}
            }
        },
        "dto.ActionRequest": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "example": "toggle_cart"},
                "value": {"type": "string", "example": "bk6"}
            }
        },
        "dto.ApplyActionsRequest": {
            "type": "object",
            "required": ["actions"],
            "properties": {
                "actions": {"type": "array", "maxItems": 20, "minItems": 1, "items": {"$ref": "#/definitions/dto.ActionRequest"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wizardshop API",
	Description:      "魔法书店目录浏览、会话与购物车接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
