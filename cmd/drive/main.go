package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"drive-go/internal/app"
	"drive-go/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// asEmail is the --as flag.
var asEmail string

// loadConfig reads the config file from the default location.
func loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}
	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

// newApp reads the config and creates a DriveApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Upload", "Restore").
func newApp(ctx context.Context, operation string, args ...string) (*app.DriveApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.NewDriveApp(ctx, cfg, operation, args...)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// newUserApp is newApp acting as the --as user.
func newUserApp(ctx context.Context, operation string, args ...string) (*app.DriveApp, error) {
	a, err := newApp(ctx, operation, args...)
	if err != nil {
		return nil, err
	}
	if err := a.As(ctx, asEmail); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// readPassphrase prompts on the terminal. DRIVE_PASSPHRASE takes precedence
// so scripts can run unattended.
func readPassphrase(prompt string, confirm bool) (string, error) {
	if p := os.Getenv("DRIVE_PASSPHRASE"); p != "" {
		return p, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal to read the passphrase from: set DRIVE_PASSPHRASE")
	}

	fmt.Fprint(os.Stderr, prompt)
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if !confirm {
		return string(first), nil
	}

	fmt.Fprint(os.Stderr, "Confirm passphrase: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passphrases do not match")
	}
	return string(first), nil
}

var rootCmd = &cobra.Command{
	Use:          "drive",
	Short:        "Multi-user versioned file store",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Println("Run 'drive migrate' to create the catalog database.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		switch cfg.BlobStore.Type {
		case "filesystem":
			fmt.Printf("Blob Store: filesystem %s\n", cfg.BlobStore.FSRoot)
		case "s3":
			fmt.Printf("Blob Store: s3 bucket=%s prefix=%s region=%s\n",
				cfg.BlobStore.S3Bucket, cfg.BlobStore.S3Prefix, cfg.BlobStore.S3Region)
		default:
			fmt.Printf("Blob Store: %s\n", cfg.BlobStore.Type)
		}
		fmt.Printf("Snapshots:  %s\n", cfg.Snapshot.Encryption)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the catalog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if err := app.Migrate(cfg); err != nil {
			return err
		}
		fmt.Println("Database is up to date.")
		return nil
	},
}

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add EMAIL [USERNAME]",
	Short: "Register a user",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "AddUser", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		username := ""
		if len(args) > 1 {
			username = args[1]
		}
		u, err := a.AddUser(ctx, args[0], username)
		if err != nil {
			return err
		}
		fmt.Printf("Added user %s (%s)\n", u.Email, u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "ListUsers")
		if err != nil {
			return err
		}
		defer a.Close()

		users, err := a.ListUsers(ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users.")
			return nil
		}
		for _, u := range users {
			fmt.Printf("%s  %-30s  %s\n", u.ID, u.Email, u.Username)
		}
		return nil
	},
}

func init() {
	defaultAs := strings.TrimSpace(os.Getenv("DRIVE_USER"))
	rootCmd.PersistentFlags().StringVar(&asEmail, "as", defaultAs, "Email of the acting user (default $DRIVE_USER)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
}
