package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"drive-go/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

func printFile(f *model.LogicalFile) {
	fmt.Printf("%s  v%-3d  %10d  %-24s  %s\n",
		f.ID, f.Priority.VersionNumber, f.Size(), f.MimeType(), f.DisplayName)
}

func printDirectory(d *model.Directory) {
	parent := "-"
	if d.ParentID != nil {
		parent = *d.ParentID
	}
	fmt.Printf("%s  %-36s  %s\n", d.ID, parent, d.FullPath)
}

// dir command
var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Manage directories",
}

var dirCreateCmd = &cobra.Command{
	Use:   "create NAME PATH",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "CreateDirectory", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.CreateDirectory(ctx, args[0], args[1], parent)
		if err != nil {
			return err
		}
		fmt.Printf("Created directory %s (%s)\n", d.FullPath, d.ID)
		return nil
	},
}

var dirListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "ListDirectories")
		if err != nil {
			return err
		}
		defer a.Close()

		dirs, err := a.ListDirectories(ctx)
		if err != nil {
			return err
		}
		if len(dirs) == 0 {
			fmt.Println("No directories.")
			return nil
		}
		for _, d := range dirs {
			printDirectory(d)
		}
		return nil
	},
}

var dirFilesCmd = &cobra.Command{
	Use:   "files DIRID",
	Short: "List a directory's files and subdirectories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "ListDirectoryFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		listing, err := a.ListDirectoryFiles(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", listing.Directory.FullPath)
		for _, d := range listing.Children {
			fmt.Printf("  %s/  %s\n", d.Name, d.ID)
		}
		for _, f := range listing.Files {
			fmt.Print("  ")
			printFile(f)
		}
		return nil
	},
}

// upload command
var uploadCmd = &cobra.Command{
	Use:   "upload DIRNAME DIRPATH FILE...",
	Short: "Upload files as new versions into a directory",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "Upload", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		files, err := a.Upload(ctx, args[0], args[1], args[2:], recursive)
		for _, f := range files {
			printFile(f)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %d file(s)\n", len(files))
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download FILEID [DEST]",
	Short: "Download the current version of a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "Download")
		if err != nil {
			return err
		}
		defer a.Close()

		dest := ""
		if len(args) > 1 {
			dest = args[1]
		}
		target, ticket, err := a.Download(ctx, args[0], dest)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d bytes, %s)\n", target, ticket.Size, ticket.MimeType)
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "List")
		if err != nil {
			return err
		}
		defer a.Close()

		files, err := a.List(ctx)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No files.")
			return nil
		}
		for _, f := range files {
			printFile(f)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search KEYWORD",
	Short: "Search file names and metadata values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "Search")
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Search(ctx, args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, r := range results {
			switch r.Kind {
			case model.MetadataMatch:
				fmt.Printf("meta  %s  %s  %s=%s\n", r.File.ID, r.File.DisplayName, r.Metadata.Key, r.Metadata.Value)
			default:
				fmt.Printf("file  %s  %s\n", r.File.ID, r.File.DisplayName)
			}
		}
		return nil
	},
}

// versions
var versionsCmd = &cobra.Command{
	Use:   "versions FILEID",
	Short: "List the versions of a file, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "ListVersions")
		if err != nil {
			return err
		}
		defer a.Close()

		revs, err := a.ListVersions(ctx, args[0])
		if err != nil {
			return err
		}
		for _, r := range revs {
			fmt.Printf("%s  v%-3d  %s  %10d  %s\n",
				r.ID, r.VersionNumber, r.UploadedAt.Format(timeLayout), r.Size, r.MimeType)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version FILEID VERSIONID",
	Short: "Show one version of a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "GetVersion")
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.GetVersion(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("ID:       %s\n", r.ID)
		fmt.Printf("Version:  %d\n", r.VersionNumber)
		fmt.Printf("Uploaded: %s\n", r.UploadedAt.Format(timeLayout))
		fmt.Printf("Size:     %d\n", r.Size)
		fmt.Printf("Type:     %s\n", r.MimeType)
		fmt.Printf("Blob:     %s\n", r.StoragePath)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore FILEID VERSIONID",
	Short: "Make an older version the current one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "Restore", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.Restore(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s is now at version %d\n", f.DisplayName, f.Priority.VersionNumber)
		return nil
	},
}

// permissions
var shareCmd = &cobra.Command{
	Use:   "share FILEID KIND [EMAIL...]",
	Short: "Set a file's permission to Private, Public or Shared",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "SetPermission", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		change, err := a.Share(ctx, args[0], args[1], args[2:])
		if err != nil {
			return err
		}
		fmt.Printf("Permission: %s\n", change.Kind)
		if len(change.Applied) > 0 {
			fmt.Printf("Shared with: %s\n", strings.Join(change.Applied, ", "))
		}
		if len(change.Rejected) > 0 {
			fmt.Printf("Unknown users: %s\n", strings.Join(change.Rejected, ", "))
		}
		return nil
	},
}

var permissionCmd = &cobra.Command{
	Use:   "permission FILEID",
	Short: "Show a file's permission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "GetPermission")
		if err != nil {
			return err
		}
		defer a.Close()

		perm, err := a.Permission(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Permission: %s\n", perm.Kind)
		for _, e := range perm.SharedWith {
			fmt.Printf("  %s\n", e)
		}
		return nil
	},
}

// metadata
var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Manage file metadata",
}

var metaAddCmd = &cobra.Command{
	Use:   "add FILEID KEY=VALUE...",
	Short: "Attach key/value pairs to a file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := make([]model.MetadataEntry, 0, len(args)-1)
		for _, kv := range args[1:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("metadata must be KEY=VALUE, got %q", kv)
			}
			entries = append(entries, model.MetadataEntry{Key: k, Value: v})
		}

		ctx := cmd.Context()
		a, err := newUserApp(ctx, "AddMetadata", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		added, err := a.AddMetadata(ctx, args[0], entries)
		if err != nil {
			return err
		}
		fmt.Printf("Added %d entr(ies)\n", len(added))
		return nil
	},
}

var metaListCmd = &cobra.Command{
	Use:   "list FILEID",
	Short: "List a file's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "ListMetadata")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.ListMetadata(ctx, args[0])
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s=%s\n", e.Key, e.Value)
		}
		return nil
	},
}

// delete and move
var rmCmd = &cobra.Command{
	Use:   "rm file|directory ID...",
	Short: "Delete files or directories",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "Delete", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		deleted, err := a.Delete(ctx, args[0], args[1:])
		if err != nil {
			return err
		}
		for _, f := range deleted {
			fmt.Printf("deleted %s  %s  (%d version(s))\n", f.FileID, f.DisplayName, len(f.StoragePaths))
		}
		fmt.Printf("Deleted %d file(s)\n", len(deleted))
		return nil
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv file|directory ID [DESTDIRID]",
	Short: "Move a file or directory",
	Long:  "Move a file into another directory, or re-parent a directory. A directory moved without DESTDIRID becomes a root.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "Move", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		dest := ""
		if len(args) > 2 {
			dest = args[2]
		}
		if err := a.Move(ctx, args[0], args[1], dest); err != nil {
			return err
		}
		fmt.Println("Moved.")
		return nil
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show storage and download statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newUserApp(ctx, "UsageAnalytics")
		if err != nil {
			return err
		}
		defer a.Close()

		u, err := a.Usage(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Total bytes: %d\n\nBy type:\n", u.TotalBytes)
		for _, k := range sortedKeys(u.ByMimeType) {
			fmt.Printf("  %-30s %d\n", k, u.ByMimeType[k])
		}
		fmt.Println("\nDownloads:")
		for _, k := range sortedKeys(u.DownloadsByName) {
			fmt.Printf("  %-30s %d\n", k, u.DownloadsByName[k])
		}
		return nil
	},
}

func formatDuration(op *model.Operation) string {
	if op.FinishedAt == nil {
		return ""
	}
	return op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond).String()
}

func init() {
	dirCmd.AddCommand(dirCreateCmd)
	dirCreateCmd.Flags().String("parent", "", "ID of the parent directory")
	dirCmd.AddCommand(dirListCmd)
	dirCmd.AddCommand(dirFilesCmd)

	metaCmd.AddCommand(metaAddCmd)
	metaCmd.AddCommand(metaListCmd)

	rootCmd.AddCommand(dirCmd)
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolP("recursive", "r", false, "Recurse into subdirectories of directory arguments")
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(permissionCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(usageCmd)
}
