package main

import (
	"fmt"
	"os"

	"github.com/yungbote/crmcore-backend/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer theApp.Close()

	addr := ":" + theApp.Cfg.Port
	fmt.Printf("Server listening on %s\n", addr)
	if err := theApp.Run(addr); err != nil {
		theApp.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
