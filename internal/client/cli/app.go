// Package cli implements the interactive fileshare client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/avlasov/fileshare/internal/client/api"
	"github.com/avlasov/fileshare/internal/client/config"
)

type App struct {
	config   *config.Config
	api      *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.Authenticated()
}

func (a *App) Run() {
	a.Root(context.Background())
}
