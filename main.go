package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"loantracker-backend/docs"
	"loantracker-backend/internal/loan_mgmt/favorites"
	"loantracker-backend/internal/loan_mgmt/holders"
	"loantracker-backend/internal/loan_mgmt/items"
	"loantracker-backend/internal/loan_mgmt/loans"
	"loantracker-backend/internal/platform/auth"
	"loantracker-backend/internal/platform/db"
)

// @title                      Loan tracker API
// @version                    1.0
// @BasePath                   /api/v1
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig(db.ConfigPath())
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s version:%s", mode, cfg.Version)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		docs.SwaggerInfo.Version = cfg.Version
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	mountAPI(r, conn, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cfg.Server.TLS {
			// TLS設定
			certFile := fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Cert)
			keyFile := fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Key)
			log.Printf("[INFO] listening on https://%s", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			log.Printf("[INFO] listening on http://%s", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

// mountAPI registers every /api/v1 route. Writes that need an admin token go
// through the admin group.
func mountAPI(r *gin.Engine, conn *sql.DB, secret []byte, tokenTTL time.Duration) {
	api := r.Group("/api/v1")
	admin := api.Group("", auth.RequireAuth(secret), auth.RequireRole(auth.RoleAdmin))

	auth.RegisterRoutes(api, admin, auth.NewService(auth.NewStore(conn), secret, tokenTTL))
	holders.RegisterRoutes(api, admin, holders.NewService(holders.NewStore(conn)))
	items.RegisterRoutes(api, admin, items.NewService(items.NewStore(conn)))
	loans.RegisterRoutes(api, admin, loans.NewService(loans.NewStore(conn)))
	favorites.RegisterRoutes(api, admin, favorites.NewService(favorites.NewStore(conn)))
}
