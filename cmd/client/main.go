package main

import (
	"github.com/avlasov/fileshare/internal/client/cli"
	"github.com/avlasov/fileshare/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run()
}
