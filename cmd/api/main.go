package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	agency "github.com/vbokhan/spy-cat-agency/internal"
	"github.com/vbokhan/spy-cat-agency/internal/repositories"
	"github.com/vbokhan/spy-cat-agency/internal/services"
	"github.com/vbokhan/spy-cat-agency/pkg/catapi"
)

func main() {
	addr := ":" + getenv("PORT", "8080")
	catAPIUrl := getenv("CAT_API_URL", "https://api.thecatapi.com/v1/breeds")

	store := repositories.NewStore()
	store.Reset()
	log.Println("In-memory store has been reset")

	catRepo := repositories.NewMemoryCatRepository(store)
	missionRepo := repositories.NewMemoryMissionRepository(store)
	targetRepo := repositories.NewMemoryTargetRepository(store)

	catAPI := catapi.NewClient(catAPIUrl, 5*time.Second)
	catService := services.NewDefaultCatService(store, catRepo, missionRepo, catAPI)
	missionService := services.NewDefaultMissionService(store, missionRepo, targetRepo, catRepo)
	server := agency.NewServer(catService, missionService)

	go func() {
		log.Printf("Spy Cat Agency API listening on %s", addr)
		if err := server.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
