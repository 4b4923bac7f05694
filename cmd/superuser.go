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

	"github.com/spf13/cobra"
)

// superuserCommands creates or promotes the system user from the
// system_user section of the configuration.
func superuserCommands(app *soilLabInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "create or update the configured superuser",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.lab.EnsureSuperuser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Superuser %s is ready (id %s)\n", user.Email, user.ID)
			return nil
		},
	}

	return cmd
}
