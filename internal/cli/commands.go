package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/padel-events/internal/calendar"
	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/crypto"
	"github.com/pfrederiksen/padel-events/internal/storage"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

func newExportCmd() *cobra.Command {
	var icsPath, csvPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Scrape the listing and export it as CSV or iCalendar",
		Long: `Scrape the tournament listing, keep the configured levels and write them
as CSV (standard output unless --csv is given), and optionally as an
iCalendar file. The seen-tournament state is not modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			tournaments, err := a.engine.Scrape(cmd.Context())
			if err != nil {
				return err
			}

			if csvPath == "" {
				if err := storage.WriteCSV(cmd.OutOrStdout(), tournaments); err != nil {
					return fmt.Errorf("writing CSV: %w", err)
				}
			} else {
				if err := writeCSVFile(csvPath, tournaments); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tournaments to %s\n", len(tournaments), csvPath)
			}

			if icsPath != "" {
				ics := calendar.GenerateICS(tournaments, time.Now(), cfg.URL)
				if err := os.WriteFile(icsPath, []byte(ics), 0o644); err != nil {
					return fmt.Errorf("writing calendar: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported calendar to %s\n", icsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to write (default standard output)")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Also write an iCalendar file")
	return cmd
}

func writeCSVFile(path string, tournaments []*tournament.Tournament) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing CSV: %w", cerr)
		}
	}()

	if err := storage.WriteCSV(f, tournaments); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the tournaments of the last successful scrape",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := storage.New(cfg.DataDir)
			if err != nil {
				return err
			}
			tournaments, err := store.LoadBatch()
			if err != nil {
				return err
			}
			return WriteTournaments(cmd.OutOrStdout(), tournaments, format, flagVerbose)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg.Redacted())
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file in use",
		Run: func(cmd *cobra.Command, args []string) {
			path := config.ResolvePath(flagConfig)
			if path == "" {
				path = filepath.Clean(config.DefaultConfigPath()) + " (not found, using defaults)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

func newEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [value]",
		Short: "Seal a secret for the configuration file",
		Long: `Encrypt a secret with the passphrase in $PADEL_SECRET and print the
"enc:" value to paste into the configuration file. The value is read from
standard input when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := crypto.NewEncryptor(os.Getenv(config.EnvSecret))
			if enc == nil {
				return fmt.Errorf("%w: set %s", crypto.ErrNoPassphrase, config.EnvSecret)
			}

			var value string
			if len(args) == 1 {
				value = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading value: %w", err)
				}
				value = strings.TrimRight(line, "\r\n")
			}
			if value == "" {
				return fmt.Errorf("nothing to encrypt")
			}

			sealed, err := enc.Seal(value)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sealed)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "padel-events %s\n", version)
		},
	}
}
