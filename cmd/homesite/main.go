package main

import (
	"log"

	"github.com/patric-chuzhbe/homesite/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalln("Application init error:", err)
	}
	if err := application.Run(); err != nil {
		application.Close()
		log.Fatalln("Application run error:", err)
	}

	application.Close()
}
