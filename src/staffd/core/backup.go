package core

import (
	"context"
	"fmt"
	"time"

	"github.com/bitswalk/staffdb/src/common/cli"
	"github.com/bitswalk/staffdb/src/common/output"
	"github.com/bitswalk/staffdb/src/staffd/backup"
	"github.com/bitswalk/staffdb/src/staffd/storage"
	"github.com/spf13/cobra"
)

// Backup commands run against the persisted database file while the server
// is stopped; restore writes the result back to database.path on exit.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
	Long: `Snapshot the persisted database into xz-compressed objects on the
configured storage backend, list them, restore one, or prune old ones.

Run these commands while staffd is stopped.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database and upload it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackupManager(cmd, func(ctx context.Context, cfg *Config, m *backup.Manager) error {
			b, err := m.Create(ctx)
			if err != nil {
				return err
			}
			if cfg.Backup.Keep > 0 && !backupNoPrune {
				if _, err := m.Prune(ctx, cfg.Backup.Keep); err != nil {
					log.Warn("Failed to prune old backups", "error", err)
				}
			}
			return output.PrintFormatted(backupFormat, b, func() error {
				printBackups(*b)
				return nil
			})
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored backups, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackupManager(cmd, func(ctx context.Context, cfg *Config, m *backup.Manager) error {
			backups, err := m.List(ctx)
			if err != nil {
				return err
			}
			return output.PrintFormatted(backupFormat, backups, func() error {
				printBackups(backups...)
				return nil
			})
		})
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [key]",
	Short: "Restore a backup, the newest one if no key is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return withBackupManager(cmd, func(ctx context.Context, cfg *Config, m *backup.Manager) error {
			b, err := m.Restore(ctx, key)
			if err != nil {
				return err
			}
			output.PrintMessage(fmt.Sprintf("Restored %s", b.Key))
			return nil
		})
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest backups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackupManager(cmd, func(ctx context.Context, cfg *Config, m *backup.Manager) error {
			keep := cfg.Backup.Keep
			if cmd.Flags().Changed("keep") {
				keep = backupKeep
			}
			deleted, err := m.Prune(ctx, keep)
			for _, key := range deleted {
				output.PrintMessage(fmt.Sprintf("Deleted %s", key))
			}
			return err
		})
	},
}

var (
	backupFormat  string
	backupKeep    int
	backupNoPrune bool
)

func init() {
	backupCmd.PersistentFlags().StringVarP(&backupFormat, "output", "o", string(output.FormatAuto), "Output format: auto, table, json, yaml")
	backupCmd.PersistentFlags().String("prefix", backup.DefaultPrefix, "Key prefix backups are stored under")
	_ = cli.BindPersistentFlag(backupCmd, "prefix", "backup.prefix")

	backupCreateCmd.Flags().BoolVar(&backupNoPrune, "no-prune", false, "Keep every backup regardless of backup.keep")
	backupPruneCmd.Flags().IntVar(&backupKeep, "keep", 7, "Number of backups to keep")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPruneCmd)
}

// withBackupManager opens the store and storage backend, runs fn, then
// persists and closes the store
func withBackupManager(cmd *cobra.Command, fn func(context.Context, *Config, *backup.Manager) error) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(contextOf(cmd), 10*time.Minute)
	defer cancel()

	backend, err := openStorage(ctx, cfg)
	if err != nil {
		return closeStore(store, err)
	}

	backup.SetLogger(log)

	err = fn(ctx, cfg, backup.NewManager(store, backend, cfg.Backup.Prefix))
	return closeStore(store, err)
}

// openStorage creates the configured backend and checks it is reachable
func openStorage(ctx context.Context, cfg *Config) (storage.Backend, error) {
	backend, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// For S3 backend, ensure bucket exists
	if s3Backend, ok := backend.(*storage.S3Backend); ok {
		if err := s3Backend.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("s3 bucket %s not accessible: %w", s3Backend.Bucket(), err)
		}
	}

	if err := backend.Ping(ctx); err != nil {
		return nil, err
	}

	log.Debug("Storage ready", "type", backend.Type(), "location", backend.Location())
	return backend, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printBackups(backups ...backup.Backup) {
	rows := make([][]string, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, []string{b.Key, b.CreatedAt.Format(time.RFC3339), fmt.Sprintf("%d", b.Size)})
	}
	output.PrintTable([]string{"KEY", "CREATED", "SIZE"}, rows)
}
