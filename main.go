package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"trackly/config"
	"trackly/server"
	"trackly/storage"
)

func main() {
	// Load the configuration from the environment (and .env when present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("error loading configuration: ", err)
	}

	// Initialize the persistence layer
	store, err := storage.NewStore(cfg.StorageBackend, cfg.MongoURI, cfg.DBName, cfg.DataDir)
	if err != nil {
		log.Fatal("error initializing storage: ", err)
	}

	// Seed the global affirmation catalog if it is empty
	if err := storage.SeedAffirmations(context.Background(), store); err != nil {
		log.Fatal("error seeding affirmations: ", err)
	}

	// Start the REST server
	go func() {
		log.Printf("listening on %s (%s backend)", cfg.ServerAddr, cfg.StorageBackend)
		if err := server.Start(cfg.ServerAddr, cfg.AllowedOrigins, store); err != nil {
			log.Fatal("server error: ", err)
		}
	}()

	// Shut down cleanly on interrupt
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Println("shutting down:", sig)

	if err := store.Disconnect(); err != nil {
		log.Println("error disconnecting storage: ", err)
	}
}
