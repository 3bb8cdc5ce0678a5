package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		ctx := cmd.Context()
		a, err := newApp(ctx, "GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(ctx, limit)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}
		for _, op := range ops {
			fmt.Printf("#%d  %-18s  %s  %-8s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format(timeLayout),
				op.Status,
				formatDuration(op),
				op.Parameters,
			)
		}
		return nil
	},
}

// snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Back up and restore the catalog database",
}

var snapshotKeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Create the snapshot encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "SnapshotKeygen")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := readPassphrase("New passphrase: ", true)
		if err != nil {
			return err
		}
		if err := a.GenerateSnapshotKeys(passphrase); err != nil {
			return err
		}
		fmt.Println("Snapshot keys created.")
		return nil
	},
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Save a snapshot of the catalog to the blob store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "CreateSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		name, err := a.CreateSnapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Snapshot saved as %s\n", name)
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore SNAPSHOT DEST",
	Short: "Write the database held by a snapshot to DEST",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "RestoreSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := readPassphrase("Passphrase: ", false)
		if err != nil {
			return err
		}
		if err := a.RestoreSnapshot(ctx, args[0], args[1], passphrase); err != nil {
			return err
		}
		fmt.Printf("Restored %s to %s\n", args[0], args[1])
		return nil
	},
}

// metrics command
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Export usage metrics",
}

var metricsExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write per-user usage in the Prometheus text format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "ExportMetrics")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ExportMetrics(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Metrics written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")

	snapshotCmd.AddCommand(snapshotKeygenCmd)
	snapshotCmd.AddCommand(snapshotCreateCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	rootCmd.AddCommand(snapshotCmd)

	metricsCmd.AddCommand(metricsExportCmd)
	rootCmd.AddCommand(metricsCmd)
}
