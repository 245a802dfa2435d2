package main

// @title Product Catalog API
// @version 1.0
// @description Product catalog service with CRUD, search, stock queries and category statistics
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @tag.name Products
// @tag.description Product management endpoints

// @tag.name Statistics
// @tag.description Category statistics endpoints

// @tag.name Health
// @tag.description Health check endpoints
