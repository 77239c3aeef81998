package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pp-governance/internal/assessment"
	"pp-governance/internal/backup"
	"pp-governance/internal/catalog"
	"pp-governance/internal/config"
	"pp-governance/internal/database"
	"pp-governance/internal/server"
	"pp-governance/internal/storage"
)

const keepBackups = 20

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("catalog loaded: %s", strings.Join(cat.Slugs(), ", "))

	// clients and audit log live in postgres whenever a DSN is given
	if cfg.DBDSN != "" {
		database.Init(cfg.DBDSN)
	}

	opts := []assessment.Option{}
	switch cfg.Storage {
	case config.StoragePostgres:
		opts = append(opts, assessment.WithStore(database.NewStore(database.DB)))
	default:
		store, err := storage.NewJSONFile(cfg.DataFile)
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		opts = append(opts, assessment.WithStore(store))
	}

	var bk *backup.Dir
	if cfg.BackupDir != "" {
		bk, err = backup.NewDir(cfg.BackupDir, keepBackups)
		if err != nil {
			log.Fatalf("backup: %v", err)
		}
		opts = append(opts, assessment.WithBackup(bk))
	}

	ws, err := assessment.New(context.Background(), cat, opts...)
	if err != nil {
		log.Fatalf("workspace: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: server.NewRouter(cfg, ws),
	}

	// signal handler for shutdown
	closed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("server shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		if bk != nil {
			if err := bk.Close(); err != nil {
				log.Printf("backup close: %v", err)
			}
		}
		close(closed)
	}()

	log.Printf("starting server on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	// block until shutdown by sig-handler
	<-closed
	log.Println("server closed")
}
