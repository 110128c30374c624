package main

import "github.com/spf13/cobra"

func newDeleteCmd() *cobra.Command {
	var pos, length int
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "delete length code points starting at pos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			if err := d.Delete(pos, length); err != nil {
				return err
			}
			return saveDoc(d)
		},
	}
	cmd.Flags().IntVar(&pos, "pos", 0, "0-based deletion start position")
	cmd.Flags().IntVar(&length, "len", 1, "number of code points to delete")
	return cmd
}
