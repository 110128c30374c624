package main

import "github.com/spf13/cobra"

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "create an empty oplog file (an existing one is rewritten as loaded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			return saveDoc(d)
		},
	}
}
