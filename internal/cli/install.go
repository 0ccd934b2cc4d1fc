package cli

import (
	"os"

	"github.com/spf13/cobra"

	"feedtochat/internal/config"
	"feedtochat/internal/install"
)

// installOptions resolves the paths an install or uninstall run works on.
// The reader config flag wins over autodetection; the binary path is the
// running executable so the macro keeps working from anywhere.
func installOptions(readerConfig string) (install.Options, error) {
	opts := install.Options{ReaderConfig: readerConfig}

	cfgPath := configPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return opts, err
		}
		cfgPath = p
	}
	opts.ConfigPath = cfgPath

	if opts.ReaderConfig == "" {
		p, err := install.DefaultReaderConfig()
		if err != nil {
			return opts, err
		}
		opts.ReaderConfig = p
	}

	if bin, err := os.Executable(); err == nil {
		opts.Binary = bin
	} else {
		opts.Binary = "feedtochat"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return opts, err
	}
	opts.HistoryPath = cfg.HistoryPath

	return opts, nil
}

func newInstallCommand() *cobra.Command {
	var readerConfig string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Wire feedtochat into newsboat",
		Long: `Write the default feedtochat config (kept if one already exists) and add
a macro line to the newsboat config, after backing it up. Press ,a on a
selected item to send it to your AI chat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := installOptions(readerConfig)
			if err != nil {
				return err
			}
			return install.Install(opts)
		},
	}

	cmd.Flags().StringVar(&readerConfig, "reader-config", "", "newsboat config file (default: autodetected)")
	return cmd
}

func newUninstallCommand() *cobra.Command {
	var readerConfig string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the newsboat macro and local artifacts",
		Long: `Remove the macro line added by install (after backing the newsboat config
up) and delete the dispatch history. Your feedtochat config file is left
in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := installOptions(readerConfig)
			if err != nil {
				return err
			}
			return install.Uninstall(opts)
		},
	}

	cmd.Flags().StringVar(&readerConfig, "reader-config", "", "newsboat config file (default: autodetected)")
	return cmd
}
