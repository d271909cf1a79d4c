package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/taxscope/corporate-tax-analyzer/client"
	"github.com/taxscope/corporate-tax-analyzer/config"
	"github.com/taxscope/corporate-tax-analyzer/handler"
	"github.com/taxscope/corporate-tax-analyzer/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize clients
	openAIClient := client.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize service layer
	documentProcessor := service.NewDocumentProcessor(tesseractClient)
	financialExtractor := service.NewFinancialExtractor(openAIClient)
	taxService := service.NewTaxService(documentProcessor, financialExtractor)

	// Initialize handler layer
	taxHandler := handler.NewTaxHandler(taxService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Corporate Tax Analyzer",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		tax := api.Group("/tax")
		{
			tax.POST("/analyze", taxHandler.AnalyzeDocument)
			tax.POST("/export", taxHandler.ExportReport)
		}
	}

	// Start server
	log.Printf("Starting Corporate Tax Analyzer on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
