package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	var port uint
	configPath := flag.String("config", "", "JSON config file (empty = defaults)")
	flag.UintVar(&port, "port", 0, "Port to listen on (overrides the config)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	if port != 0 {
		cfg.Port = port
	}
	if cfg.Port > 65535 {
		fmt.Println("Invalid port number")
		os.Exit(1)
	}

	app := NewApplication(cfg, os.Stdout)
	defer app.Close()

	log.Printf("[server] listening on :%d", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), app.Handler()); err != nil {
		log.Fatalf("[server] %v", err)
	}
}
