package handlers

// @title Serverless Gin API
// @version 1.0
// @description A gin application served from a long-running process or AWS Lambda

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name greetings
// @tag.description Greeting operations

// @tag.name health
// @tag.description Service health

// @tag.name auth
// @tag.description Development tokens
