package main

import (
	"fmt"
	"log"
	"os"

	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/server"
)

func usage() {
	fmt.Println("Usage: webmail <command>")
	fmt.Println("Commands:")
	fmt.Println("  server    Start the application server")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "server":
		cfg, err := config.InitConfig()
		if err != nil {
			log.Fatalf("Config initialization failed: %v", err)
		}

		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("Webmail starting up...")

		srv, err := server.NewServer(cfg)
		if err != nil {
			log.Fatalf("Server setup failed: %v", err)
		}

		if err := srv.Run(); err != nil {
			log.Fatalf("Server stopped with error: %v", err)
		}

		log.Println("Shutdown complete")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}
