// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/privtx"
)

func endpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the builders transactions are sent to",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, kind := range privtx.Kinds() {
				e := kind.Endpoint()
				if _, err := fmt.Fprintf(out, "%-8s %-40s %s\n", kind, e.URL, e.Method); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
