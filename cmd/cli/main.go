package main

import (
	"context"
	"log"
	"os"

	"github.com/glucotrack/glucotrack/internal/buildinfo"
	"github.com/glucotrack/glucotrack/internal/client/cli"
	"github.com/glucotrack/glucotrack/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
