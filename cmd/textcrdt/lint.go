package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/textcrdt/textcrdt/oplog"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "check the on-disk oplog for structural invariant violations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			if err := oplog.Validate(d.OpLog()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}
