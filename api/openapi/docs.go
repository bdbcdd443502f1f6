// Package openapi 注册 Swagger 文档，路由与模型描述对应 internal/api/handler 上的 swag 注解。
// 修改 handler 注解后可执行 swag init -g cmd/api/main.go -o api/openapi --outputTypes go 重新生成本文件。
package openapi

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
		"/user/c/{username}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "频道主页",
				"parameters": [
					{
						"type": "string",
						"description": "用户名",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.ChannelProfile"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "频道不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/change-password": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "修改密码",
				"parameters": [
					{
						"description": "新旧密码",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ChangePasswordRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "修改成功",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"401": {
						"description": "旧密码错误",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/current-user": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "获取当前用户",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.UserInfo"
										}
									}
								}
							]
						}
					},
					"401": {
						"description": "未登录",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/login": {
			"post": {
				"description": "用户名或邮箱登录，令牌同时写入 httpOnly Cookie",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "用户登录",
				"parameters": [
					{
						"description": "登录信息",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "登录成功",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.LoginData"
										}
									}
								}
							]
						}
					},
					"401": {
						"description": "密码错误",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "用户不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/logout": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "退出登录",
				"responses": {
					"200": {
						"description": "已退出",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/user/refresh-tokens": {
			"post": {
				"description": "刷新令牌取自 Cookie 或请求体，成功后轮换两种令牌",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "刷新访问令牌",
				"parameters": [
					{
						"description": "刷新令牌",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/dto.RefreshTokenRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "刷新成功",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.TokenPair"
										}
									}
								}
							]
						}
					},
					"401": {
						"description": "刷新令牌无效或已使用",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/register": {
			"post": {
				"description": "注册新用户，头像必填，封面可选",
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "用户注册",
				"parameters": [
					{
						"type": "string",
						"description": "用户名",
						"name": "username",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "邮箱",
						"name": "email",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "昵称",
						"name": "fullName",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "密码",
						"name": "password",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "头像",
						"name": "avatar",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "频道封面",
						"name": "coverImage",
						"in": "formData"
					}
				],
				"responses": {
					"201": {
						"description": "注册成功",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.UserInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "请求参数无效",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"409": {
						"description": "用户名或邮箱已存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/update-avatar": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "更换头像",
				"parameters": [
					{
						"type": "file",
						"description": "头像",
						"name": "avatar",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.UserInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "头像缺失",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"500": {
						"description": "上传失败",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/update-coverImage": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "更换频道封面",
				"parameters": [
					{
						"type": "file",
						"description": "频道封面",
						"name": "coverImage",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.UserInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "封面缺失",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"500": {
						"description": "上传失败",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/update-profile": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "修改昵称与邮箱",
				"parameters": [
					{
						"description": "资料",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdateProfileRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.UserInfo"
										}
									}
								}
							]
						}
					},
					"409": {
						"description": "邮箱已被占用",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/watch-history": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "按最近观看时间倒序，同一视频只出现一次",
				"produces": [
					"application/json"
				],
				"tags": [
					"用户"
				],
				"summary": "观看历史",
				"parameters": [
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_VideoInfo"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/video": {
			"get": {
				"description": "标题或简介模糊匹配，userId 过滤作者，仅作者本人可见未发布视频",
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "视频列表",
				"parameters": [
					{
						"type": "string",
						"description": "关键词",
						"name": "query",
						"in": "query"
					},
					{
						"type": "string",
						"description": "排序字段 createdAt|views|duration|title",
						"name": "sortBy",
						"in": "query"
					},
					{
						"type": "string",
						"description": "asc|desc",
						"name": "sortType",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "作者ID",
						"name": "userId",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_VideoInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "排序参数无效",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "发布视频",
				"parameters": [
					{
						"type": "string",
						"description": "标题",
						"name": "title",
						"in": "formData",
						"required": true
					},
					{
						"type": "string",
						"description": "简介",
						"name": "description",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "视频文件",
						"name": "videoFile",
						"in": "formData",
						"required": true
					},
					{
						"type": "file",
						"description": "缩略图",
						"name": "thumbnail",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.VideoInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "参数缺失",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"500": {
						"description": "上传失败",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/video/search": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "搜索视频",
				"parameters": [
					{
						"type": "string",
						"description": "关键词",
						"name": "q",
						"in": "query",
						"required": true
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_VideoInfo"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/video/toggle/publish/{videoId}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "切换发布状态",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.VideoInfo"
										}
									}
								}
							]
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/video/{videoId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "视频详情",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.VideoDetail"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"multipart/form-data"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "修改视频",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "标题",
						"name": "title",
						"in": "formData"
					},
					{
						"type": "string",
						"description": "简介",
						"name": "description",
						"in": "formData"
					},
					{
						"type": "file",
						"description": "缩略图",
						"name": "thumbnail",
						"in": "formData"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.VideoInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "没有可修改的字段",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"视频"
				],
				"summary": "删除视频",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/comments/c/{commentId}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"评论"
				],
				"summary": "修改评论",
				"parameters": [
					{
						"type": "integer",
						"description": "评论ID",
						"name": "commentId",
						"in": "path",
						"required": true
					},
					{
						"description": "评论内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ContentRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.CommentInfo"
										}
									}
								}
							]
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "评论不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"评论"
				],
				"summary": "删除评论",
				"parameters": [
					{
						"type": "integer",
						"description": "评论ID",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "评论不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/comments/{videoId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"评论"
				],
				"summary": "视频评论列表",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_CommentInfo"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"评论"
				],
				"summary": "发表评论",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"description": "评论内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ContentRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.CommentInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "内容为空",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/like/toggle/comment/{commentId}": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"点赞"
				],
				"summary": "切换评论点赞",
				"parameters": [
					{
						"type": "integer",
						"description": "评论ID",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.LikeToggleData"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "评论不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/like/toggle/tweet/{tweetId}": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"点赞"
				],
				"summary": "切换动态点赞",
				"parameters": [
					{
						"type": "integer",
						"description": "动态ID",
						"name": "tweetId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.LikeToggleData"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "动态不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/like/toggle/video/{videoId}": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"点赞"
				],
				"summary": "切换视频点赞",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.LikeToggleData"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "视频不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/like/videos": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"点赞"
				],
				"summary": "点赞过的视频",
				"parameters": [
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_VideoInfo"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/subscription/c/{channelId}": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"订阅"
				],
				"summary": "切换订阅",
				"parameters": [
					{
						"type": "integer",
						"description": "频道ID",
						"name": "channelId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.SubscriptionToggleData"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "不能订阅自己",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "频道不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"订阅"
				],
				"summary": "频道订阅者",
				"parameters": [
					{
						"type": "integer",
						"description": "频道ID",
						"name": "channelId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_OwnerBrief"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/subscription/u/{subscriberId}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"订阅"
				],
				"summary": "已订阅的频道",
				"parameters": [
					{
						"type": "integer",
						"description": "订阅者ID",
						"name": "subscriberId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_ChannelBrief"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/playlist": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "创建播放列表",
				"parameters": [
					{
						"description": "名称与简介",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreatePlaylistRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.PlaylistInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "名称为空",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"409": {
						"description": "同名列表已存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/playlist/add/{videoId}/{playlistId}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "添加视频到播放列表",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "列表ID",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.PlaylistInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "视频已在列表中",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"403": {
						"description": "非创建者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "视频或列表不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/playlist/remove/{videoId}/{playlistId}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "从播放列表移除视频",
				"parameters": [
					{
						"type": "integer",
						"description": "视频ID",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "列表ID",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.PlaylistInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "视频不在列表中",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"403": {
						"description": "非创建者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "列表不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/playlist/user/{userId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "用户的播放列表",
				"parameters": [
					{
						"type": "integer",
						"description": "用户ID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_PlaylistInfo"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/playlist/{playlistId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "播放列表详情",
				"parameters": [
					{
						"type": "integer",
						"description": "列表ID",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.PlaylistInfo"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "列表不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "修改播放列表",
				"parameters": [
					{
						"type": "integer",
						"description": "列表ID",
						"name": "playlistId",
						"in": "path",
						"required": true
					},
					{
						"description": "名称与简介",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.UpdatePlaylistRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.PlaylistInfo"
										}
									}
								}
							]
						}
					},
					"403": {
						"description": "非创建者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "列表不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"409": {
						"description": "同名列表已存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"播放列表"
				],
				"summary": "删除播放列表",
				"parameters": [
					{
						"type": "integer",
						"description": "列表ID",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "非创建者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "列表不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/tweets": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"动态"
				],
				"summary": "发布动态",
				"parameters": [
					{
						"description": "动态内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ContentRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.TweetInfo"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "内容为空",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/tweets/user/{userId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"动态"
				],
				"summary": "用户动态列表",
				"parameters": [
					{
						"type": "integer",
						"description": "用户ID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_TweetInfo"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "用户不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/tweets/{tweetId}": {
			"patch": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"动态"
				],
				"summary": "修改动态",
				"parameters": [
					{
						"type": "integer",
						"description": "动态ID",
						"name": "tweetId",
						"in": "path",
						"required": true
					},
					{
						"description": "动态内容",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ContentRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.TweetInfo"
										}
									}
								}
							]
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "动态不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"动态"
				],
				"summary": "删除动态",
				"parameters": [
					{
						"type": "integer",
						"description": "动态ID",
						"name": "tweetId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					},
					"403": {
						"description": "非作者",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					},
					"404": {
						"description": "动态不存在",
						"schema": {
							"$ref": "#/definitions/response.ErrorResponse"
						}
					}
				}
			}
		},
		"/dashboard/stats": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "视频数、总播放、订阅数，以及视频、评论、动态获得的点赞总数",
				"produces": [
					"application/json"
				],
				"tags": [
					"控制台"
				],
				"summary": "频道统计",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.ChannelStats"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/dashboard/videos": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "包含未发布视频，附带点赞数与评论数",
				"produces": [
					"application/json"
				],
				"tags": [
					"控制台"
				],
				"summary": "频道视频列表",
				"parameters": [
					{
						"type": "integer",
						"description": "页码",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "每页数量",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/response.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/dto.Page-dto_DashboardVideo"
										}
									}
								}
							]
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.ChangePasswordRequest": {
			"type": "object",
			"properties": {
				"oldPassword": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				}
			}
		},
		"dto.ChannelBrief": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"fullName": {
					"type": "string"
				},
				"avatar": {
					"type": "string"
				},
				"subscribersCount": {
					"type": "integer"
				}
			}
		},
		"dto.ChannelProfile": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"fullName": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"avatar": {
					"type": "string"
				},
				"coverImage": {
					"type": "string"
				},
				"subscribersCount": {
					"type": "integer"
				},
				"subscribedToCount": {
					"type": "integer"
				},
				"isSubscribed": {
					"type": "boolean"
				}
			}
		},
		"dto.ChannelStats": {
			"type": "object",
			"properties": {
				"channelId": {
					"type": "integer"
				},
				"totalVideos": {
					"type": "integer"
				},
				"totalViews": {
					"type": "integer"
				},
				"totalSubscribers": {
					"type": "integer"
				},
				"totalLikes": {
					"type": "integer"
				}
			}
		},
		"dto.CommentInfo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"videoId": {
					"type": "integer"
				},
				"content": {
					"type": "string"
				},
				"createdBy": {
					"$ref": "#/definitions/dto.OwnerBrief"
				},
				"likesCount": {
					"type": "integer"
				},
				"isMyComment": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.ContentRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			}
		},
		"dto.CreatePlaylistRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"dto.DashboardVideo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"videoFile": {
					"type": "string"
				},
				"thumbnail": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"duration": {
					"type": "number"
				},
				"views": {
					"type": "integer"
				},
				"isPublished": {
					"type": "boolean"
				},
				"ownerId": {
					"type": "integer"
				},
				"owner": {
					"$ref": "#/definitions/dto.OwnerBrief"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				},
				"likesCount": {
					"type": "integer"
				},
				"commentsCount": {
					"type": "integer"
				}
			}
		},
		"dto.LikeToggleData": {
			"type": "object",
			"properties": {
				"targetType": {
					"type": "string"
				},
				"targetId": {
					"type": "integer"
				},
				"isLiked": {
					"type": "boolean"
				},
				"likesCount": {
					"type": "integer"
				}
			}
		},
		"dto.LoginData": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/dto.UserInfo"
				},
				"accessToken": {
					"type": "string"
				},
				"refreshToken": {
					"type": "string"
				}
			}
		},
		"dto.LoginRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"dto.OwnerBrief": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"fullName": {
					"type": "string"
				},
				"avatar": {
					"type": "string"
				}
			}
		},
		"dto.Page-dto_ChannelBrief": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.ChannelBrief"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.Page-dto_CommentInfo": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.CommentInfo"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.Page-dto_DashboardVideo": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.DashboardVideo"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.Page-dto_OwnerBrief": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.OwnerBrief"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.Page-dto_PlaylistInfo": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.PlaylistInfo"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.Page-dto_TweetInfo": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.TweetInfo"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.Page-dto_VideoInfo": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.VideoInfo"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"totalPages": {
					"type": "integer"
				}
			}
		},
		"dto.PlaylistInfo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"owner": {
					"$ref": "#/definitions/dto.OwnerBrief"
				},
				"videos": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.VideoInfo"
					}
				},
				"videosCount": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.RefreshTokenRequest": {
			"type": "object",
			"properties": {
				"refreshToken": {
					"type": "string"
				}
			}
		},
		"dto.SubscriptionToggleData": {
			"type": "object",
			"properties": {
				"channelId": {
					"type": "integer"
				},
				"isSubscribed": {
					"type": "boolean"
				},
				"subscribersCount": {
					"type": "integer"
				}
			}
		},
		"dto.TokenPair": {
			"type": "object",
			"properties": {
				"accessToken": {
					"type": "string"
				},
				"refreshToken": {
					"type": "string"
				}
			}
		},
		"dto.TweetInfo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"content": {
					"type": "string"
				},
				"owner": {
					"$ref": "#/definitions/dto.OwnerBrief"
				},
				"likesCount": {
					"type": "integer"
				},
				"isLiked": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.UpdatePlaylistRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"dto.UpdateProfileRequest": {
			"type": "object",
			"properties": {
				"fullName": {
					"type": "string"
				},
				"email": {
					"type": "string"
				}
			}
		},
		"dto.UserInfo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"fullName": {
					"type": "string"
				},
				"avatar": {
					"type": "string"
				},
				"coverImage": {
					"type": "string"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"dto.VideoDetail": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"videoFile": {
					"type": "string"
				},
				"thumbnail": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"duration": {
					"type": "number"
				},
				"views": {
					"type": "integer"
				},
				"isPublished": {
					"type": "boolean"
				},
				"ownerId": {
					"type": "integer"
				},
				"owner": {
					"$ref": "#/definitions/dto.OwnerBrief"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				},
				"likesCount": {
					"type": "integer"
				},
				"isLiked": {
					"type": "boolean"
				}
			}
		},
		"dto.VideoInfo": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"videoFile": {
					"type": "string"
				},
				"thumbnail": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"duration": {
					"type": "number"
				},
				"views": {
					"type": "integer"
				},
				"isPublished": {
					"type": "boolean"
				},
				"ownerId": {
					"type": "integer"
				},
				"owner": {
					"$ref": "#/definitions/dto.OwnerBrief"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"response.ErrorResponse": {
			"type": "object",
			"properties": {
				"statusCode": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				},
				"errors": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"response.Response": {
			"type": "object",
			"properties": {
				"statusCode": {
					"type": "integer"
				},
				"data": {},
				"message": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "输入格式: Bearer {token}，浏览器端可直接使用 accessToken Cookie",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo 文档元信息，运行时可按配置修改 Host
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "VidTube API",
	Description:      "视频分享平台 API 服务",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
