package main

import (
	"context"
	"log"

	"github.com/crewbase/crewbase/internal/server"
	"github.com/crewbase/crewbase/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
