/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package main provides the CLI commands for managing database migrations.
This includes commands for applying and rolling back migrations.
*/

package main

import (
	"fmt"

	"github.com/jerry-enebeli/soillab"
	"github.com/jerry-enebeli/soillab/database"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
)

// migrationSource reads the SQL migrations embedded in the binary.
func migrationSource() migrate.EmbedFileSystemMigrationSource {
	return migrate.EmbedFileSystemMigrationSource{
		FileSystem: soillab.SQLFiles,
		Root:       "sql",
	}
}

// migrateCommands creates the root command for migration-related operations.
func migrateCommands(app *soilLabInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "migrate",
		Short:       "apply or roll back soillab database migrations",
		Annotations: map[string]string{skipConnect: "true"},
	}

	cmd.AddCommand(migrateUpCommands(app))
	cmd.AddCommand(migrateDownCommands(app))

	return cmd
}

// migrateUpCommands creates the command for applying migrations.
func migrateUpCommands(app *soilLabInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "up",
		Annotations: map[string]string{skipConnect: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := runMigrations(app, migrate.Up, 0)
			if err != nil {
				return fmt.Errorf("error migrating up: %w", err)
			}
			fmt.Printf("Applied %d migrations!\n", n)
			return nil
		},
	}

	return cmd
}

// migrateDownCommands creates the command for rolling back migrations. It
// rolls back one migration unless --all is set.
func migrateDownCommands(app *soilLabInstance) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:         "down",
		Annotations: map[string]string{skipConnect: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := 1
			if all {
				limit = 0
			}
			n, err := runMigrations(app, migrate.Down, limit)
			if err != nil {
				return fmt.Errorf("error migrating down: %w", err)
			}
			fmt.Printf("Rolled back %d migrations!\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "roll back every applied migration")

	return cmd
}

func runMigrations(app *soilLabInstance, dir migrate.MigrationDirection, limit int) (int, error) {
	db, err := database.ConnectDB(app.cnf.DataSource)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return migrate.ExecMax(db, "postgres", migrationSource(), dir, limit)
}
