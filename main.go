package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leandre000/P-manager/internal/auth"
	"github.com/leandre000/P-manager/internal/config"
	"github.com/leandre000/P-manager/internal/db"
	"github.com/leandre000/P-manager/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(db.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		Host:     cfg.DBHost,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := database.Init(ctx); err != nil {
		log.Fatal(err)
	}

	tokens := auth.New(auth.Config{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	}, nil)

	srv := server.New(database, tokens, nil)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Println("shutdown:", err)
		}
	}()

	log.Println("Server running on port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
