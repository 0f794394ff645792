package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-outreach/internal/contacts"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge manually fixed contacts into a contact table",
	Long: "Merge contacts recovered by hand (for example from the skipped-lines file) into the " +
		"main contact table. Rows whose email is already present are skipped.",
	RunE: runMerge,
}

var (
	mergeBase  string
	mergeFixes string
	mergeOut   string
)

func init() {
	mergeCmd.Flags().StringVar(&mergeBase, "base", "hr_contacts.csv", "Existing contact table")
	mergeCmd.Flags().StringVar(&mergeFixes, "fixes", "", "Table of corrected contacts")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "Output table (default: overwrite --base)")
	_ = mergeCmd.MarkFlagRequired("fixes")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	base, err := contacts.Load(mergeBase)
	if err != nil {
		return err
	}
	fixes, err := contacts.Load(mergeFixes)
	if err != nil {
		return err
	}

	merged, skipped := contacts.Merge(base, fixes)
	out := mergeOut
	if out == "" {
		out = mergeBase
	}
	if err := contacts.Save(out, merged); err != nil {
		return err
	}

	logger.Info("merge.saved", "path", out, "added", len(merged)-len(base), "skipped", len(skipped))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Merged %d contacts (%d added, %d duplicates skipped) into %s\n",
		len(merged), len(merged)-len(base), len(skipped), out)
	return nil
}
