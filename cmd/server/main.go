package main

import (
	"log"

	"github.com/obaidurrehman72007/deep-lens/internal/config"
	"github.com/obaidurrehman72007/deep-lens/internal/database"
	"github.com/obaidurrehman72007/deep-lens/internal/server"
)

func main() {
	// 설정 로드
	cfg := config.Load()
	logger := config.NewLogger()

	// 데이터베이스 연결
	db, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer database.Close()

	// Ping 테스트
	if err := database.Ping(); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}
	log.Printf("✅ Database connected successfully")

	// 서버 생성 및 설정
	srv := server.New(cfg, db, logger)
	srv.SetupMiddleware()
	srv.SetupRoutes()

	// 서버 시작
	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
