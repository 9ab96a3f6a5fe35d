package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ncd-quote/internal/api"
	"ncd-quote/internal/config"
	"ncd-quote/internal/database"
	"ncd-quote/internal/gemini"
	"ncd-quote/internal/parser"
	"ncd-quote/internal/realtime"
	"ncd-quote/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	st := store.New(db)

	// 服务端台账镜像从存储水合，之后由事件流推进
	quotes, err := st.ListQuotations()
	if err != nil {
		log.Fatal("Failed to load quotations:", err)
	}
	mats, err := st.ListMaturities()
	if err != nil {
		log.Fatal("Failed to load maturities:", err)
	}
	hub := realtime.NewHub(realtime.Ledger{Quotations: quotes, Maturities: mats})
	go hub.Run()

	extractor := buildExtractor(cfg)

	// Initialize Gin router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UnixMilli()})
	})

	// WebSocket 实时同步入口
	r.GET("/ws", func(c *gin.Context) {
		realtime.ServeWS(hub, c.Writer, c.Request)
	})

	// API routes
	apiGroup := r.Group("/api/v1")
	api.SetupRoutes(apiGroup, st, hub, extractor)

	log.Printf("[服务] NCD 报价管理系统启动，端口 %s，解析模式 %s", cfg.Port, cfg.ParserMode)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// buildExtractor 按配置选择解析后端。
// Gemini 初始化失败时退回规则解析，保证服务总能启动。
func buildExtractor(cfg *config.Config) parser.Extractor {
	if cfg.ParserMode == "gemini" {
		ext, err := gemini.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel,
			time.Duration(cfg.GeminiTimeout)*time.Second)
		if err != nil {
			log.Printf("⚠️  Gemini 解析不可用，退回规则解析: %v", err)
			return parser.NewRuleExtractor()
		}
		log.Printf("🔮 解析后端: Gemini (%s)", cfg.GeminiModel)
		return ext
	}
	return parser.NewRuleExtractor()
}
