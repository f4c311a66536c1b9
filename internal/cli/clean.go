// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCleanCmd(ro *RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the entire archive tree",
		Long: `Deletes the output directory and everything under it.

A subsequent run re-fetches every date from scratch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); os.IsNotExist(err) {
				fmt.Printf("nothing to clean: %s does not exist\n", output)
				return nil
			}
			if err := os.RemoveAll(output); err != nil {
				return fmt.Errorf("could not remove %s: %w", output, err)
			}
			fmt.Printf("removed %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "boe", "Archive directory to delete")

	return cmd
}
