package cmd

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an external chaincode service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (overrides chaincode.address)")
	serveCmd.Flags().String("ccid", "", "package id assigned by the peer (overrides chaincode.id)")
	serveCmd.Flags().Bool("tls", false, "enable TLS (overrides chaincode.tls.enabled)")

	_ = viper.BindPFlag("chaincode.address", serveCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("chaincode.id", serveCmd.Flags().Lookup("ccid"))
	_ = viper.BindPFlag("chaincode.tls.enabled", serveCmd.Flags().Lookup("tls"))
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cc, err := newChaincode(cfg)
	if err != nil {
		return err
	}
	tlsProps, err := cfg.TLSProperties()
	if err != nil {
		return err
	}

	server := &shim.ChaincodeServer{
		CCID:     cfg.Chaincode.ID,
		Address:  cfg.Chaincode.Address,
		CC:       cc,
		TLSProps: tlsProps,
	}
	logger.Infof("Serving chaincode '%s' on %s (tls=%t)", cfg.Chaincode.ID, cfg.Chaincode.Address, !tlsProps.Disabled)
	if err := server.Start(); err != nil {
		return fmt.Errorf("error starting chaincode server: %w", err)
	}
	return nil
}
