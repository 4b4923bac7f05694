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

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jerry-enebeli/soillab"
	"github.com/jerry-enebeli/soillab/config"
	"github.com/jerry-enebeli/soillab/database"
	"github.com/jerry-enebeli/soillab/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// SoilLab represents the CLI application, encapsulating the root Cobra command.
type SoilLab struct {
	cmd *cobra.Command
}

// soilLabInstance holds the service and its configuration once preRun has
// loaded them.
type soilLabInstance struct {
	lab *soillab.SoilLab
	cnf *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration file and connects the service before any
// command runs. Commands that only need the configuration skip the connection.
func preRun(app *soilLabInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(*configFile); err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}
		app.cnf = cnf

		if cmd.Annotations[skipConnect] == "true" {
			return nil
		}

		lab, err := setupSoilLab(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}
		app.lab = lab

		return nil
	}
}

// skipConnect marks commands that must not open the database or Redis.
const skipConnect = "skip-connect"

// setupSoilLab connects the data source and builds the service from the configuration.
func setupSoilLab(cfg *config.Configuration) (*soillab.SoilLab, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("error getting datasource: %v", err)
	}

	lab, err := soillab.NewSoilLab(db)
	if err != nil {
		return nil, fmt.Errorf("error creating soil lab: %v", err)
	}
	return lab, nil
}

// NewCLI creates the command-line interface with the server, migration,
// superuser and config commands.
func NewCLI() *SoilLab {
	var configFile string
	app := &soilLabInstance{}

	var rootCmd = &cobra.Command{
		Use:   "soillab",
		Short: "Soil laboratory sample and test tracking",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./soillab.json", "Configuration file for soillab")
	rootCmd.PersistentPreRunE = preRun(app, &configFile)

	rootCmd.AddCommand(serverCommands(app))
	rootCmd.AddCommand(migrateCommands(app))
	rootCmd.AddCommand(superuserCommands(app))
	rootCmd.AddCommand(configCommands(app))

	return &SoilLab{cmd: rootCmd}
}

// executeCLI runs the root command, exiting with status 1 on error.
func (s SoilLab) executeCLI() {
	if err := s.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
