package main

import (
	"github.com/agora-lab/backend/internal/entity"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.loadDatabase()

	if err := entity.MigrateTable(s.db); err != nil {
		return err
	}

	s.logger.Infof("Migrated the database successfully")
	return nil
}
