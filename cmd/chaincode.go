package cmd

import (
	"fmt"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/config"
	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/contract"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// newChaincode assembles the four registry contracts into one chaincode.
// The identity contract is the default for unqualified function names.
func newChaincode(c config.Config) (*contractapi.ContractChaincode, error) {
	bootstrap := contract.WithBootstrapMSPID(c.Chaincode.BootstrapMSPID)
	if c.Chaincode.BootstrapMSPID == "" {
		logger.Warning("chaincode.bootstrap_msp_id is unset; the first caller of InitRegistry on each registry becomes its admin")
	}
	cc, err := contractapi.NewChaincode(
		contract.NewIdentityContract(bootstrap),
		contract.NewOwnershipContract(bootstrap),
		contract.NewUsageContract(bootstrap),
		contract.NewAnonymizationContract(bootstrap),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating datagov chaincode: %w", err)
	}
	cc.Info.Title = c.Metadata.Title
	cc.Info.Version = c.Metadata.Version
	cc.DefaultContract = contract.RegistryIdentity
	return cc, nil
}
