package cmd

import (
	"fmt"

	"github.com/hyperledger/fabric/common/flogging"
	"github.com/spf13/cobra"
)

var logger = flogging.MustGetLogger("datagov.cmd")

var startCmd = &cobra.Command{
	Use:                "start",
	Short:              "Start as peer-launched chaincode",
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cc, err := newChaincode(cfg)
	if err != nil {
		return err
	}
	logger.Infof("Starting %s %s as peer-launched chaincode", cfg.Metadata.Title, cfg.Metadata.Version)
	if err := cc.Start(); err != nil {
		return fmt.Errorf("error starting chaincode: %w", err)
	}
	return nil
}
