package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text",
		Short: "print the current document text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDoc()
			if err != nil {
				return err
			}
			fmt.Println(d.GetText())
			return nil
		},
	}
}
