package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "verify the cached snapshot matches a fresh replay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			if err := d.Check(); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}
