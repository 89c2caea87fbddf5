package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Agora"
	app.Usage = "A community forum service"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path of the configuration file",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       app.Flags,
			Category:    "Api",
			Description: `Start the main service which serves every forum api.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Flags:       app.Flags,
			Category:    "Database",
			Description: `Create or update every table this service uses.`,
		},
	}

	s.app = app
}
