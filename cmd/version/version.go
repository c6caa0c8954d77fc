// Package versioncmder
package versioncmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/pkg/version"
)

type VersionCommander struct{}

func NewVersionCmd() *cobra.Command {
	cmder := &VersionCommander{}

	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "displays version",
		Long:  "displays the version, commit, and build time of this CLI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, short)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version string")

	return cmd
}

func (c *VersionCommander) run(cmd *cobra.Command, short bool) error {
	out := cmd.OutOrStdout()

	if short {
		fmt.Fprintln(out, version.Version)
		return nil
	}

	fmt.Fprintf(out, "recall %s\ncommit: %s\nbuilt:  %s\n",
		version.Version, version.Sha, version.Buildtime)
	return nil
}
