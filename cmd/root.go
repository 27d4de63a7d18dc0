// Package cmd wires the datagov chaincode binary.
package cmd

import (
	"fmt"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/config"

	"github.com/hyperledger/fabric/common/flogging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "datagov-cc",
	Short: "Research-data governance chaincode",
	Long: `Hyperledger Fabric chaincode holding four registries: institution identity,
dataset ownership and access, dataset usage and anonymization provenance.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	// The peer launches chaincode as "<binary> -peer.address=..."; that flag
	// belongs to the shim, which parses os.Args itself.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runStart,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./datagov.yaml or /etc/datagov/datagov.yaml)")
	rootCmd.PersistentFlags().String("log-spec", "",
		"flogging spec, e.g. info or datagov.ownership=debug:info")

	_ = viper.BindPFlag("log.spec", rootCmd.PersistentFlags().Lookup("log-spec"))

	rootCmd.AddCommand(startCmd, serveCmd, versionCmd)
}

// loadConfig runs before every sub-command.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := flogging.Global.ActivateSpec(loaded.Log.Spec); err != nil {
		return fmt.Errorf("invalid log spec '%s': %w", loaded.Log.Spec, err)
	}
	cfg = loaded
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
