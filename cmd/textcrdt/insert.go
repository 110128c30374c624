package main

import "github.com/spf13/cobra"

func newInsertCmd() *cobra.Command {
	var pos int
	cmd := &cobra.Command{
		Use:   "insert <text>",
		Short: "insert text at pos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			if err := d.Insert(pos, args[0]); err != nil {
				return err
			}
			return saveDoc(d)
		},
	}
	cmd.Flags().IntVar(&pos, "pos", 0, "0-based insertion position")
	return cmd
}
