package contract

import (
	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// OwnershipContract exposes dataset ownership and access grants.
type OwnershipContract struct {
	contractapi.Contract
	opts registryOptions
}

// NewOwnershipContract returns the contract under the "ownership" namespace.
func NewOwnershipContract(opts ...Option) *OwnershipContract {
	c := &OwnershipContract{opts: newRegistryOptions(opts)}
	c.Name = RegistryOwnership
	return c
}

func (c *OwnershipContract) InitRegistry(ctx contractapi.TransactionContextInterface) error {
	ccLogger.Info("Chaincode Call: ownership:InitRegistry")
	return initializeRegistry(ctx, RegistryOwnership, c.opts)
}

func (c *OwnershipContract) TransferAdmin(ctx contractapi.TransactionContextInterface, newAdmin string) error {
	ccLogger.Infof("Chaincode Call: ownership:TransferAdmin to '%s'", newAdmin)
	return NewOwnershipRegistry(ctx).Admin().Transfer(newAdmin)
}

func (c *OwnershipContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	return NewOwnershipRegistry(ctx).Admin().Current()
}

func (c *OwnershipContract) RegisterDataset(ctx contractapi.TransactionContextInterface, datasetID uint64) error {
	ccLogger.Infof("Chaincode Call: ownership:RegisterDataset %d", datasetID)
	return NewOwnershipRegistry(ctx).RegisterDataset(datasetID)
}

func (c *OwnershipContract) IsOwner(ctx contractapi.TransactionContextInterface, datasetID uint64) (bool, error) {
	ccLogger.Debugf("Chaincode Call: ownership:IsOwner %d", datasetID)
	return NewOwnershipRegistry(ctx).IsOwner(datasetID)
}

func (c *OwnershipContract) GetDataset(ctx contractapi.TransactionContextInterface, datasetID uint64) (*model.Dataset, error) {
	ccLogger.Debugf("Chaincode Call: ownership:GetDataset %d", datasetID)
	return NewOwnershipRegistry(ctx).GetDataset(datasetID)
}

func (c *OwnershipContract) GrantAccess(ctx contractapi.TransactionContextInterface, datasetID uint64, accessor string, level uint32, expiration uint64) error {
	ccLogger.Infof("Chaincode Call: ownership:GrantAccess on %d to '%s' (level %d, expires %d)", datasetID, accessor, level, expiration)
	return NewOwnershipRegistry(ctx).GrantAccess(datasetID, accessor, level, expiration)
}

func (c *OwnershipContract) RevokeAccess(ctx contractapi.TransactionContextInterface, datasetID uint64, accessor string) error {
	ccLogger.Infof("Chaincode Call: ownership:RevokeAccess on %d for '%s'", datasetID, accessor)
	return NewOwnershipRegistry(ctx).RevokeAccess(datasetID, accessor)
}

func (c *OwnershipContract) HasAccess(ctx contractapi.TransactionContextInterface, datasetID uint64, accessor string) (bool, error) {
	ccLogger.Debugf("Chaincode Call: ownership:HasAccess on %d for '%s'", datasetID, accessor)
	return NewOwnershipRegistry(ctx).HasAccess(datasetID, accessor)
}

func (c *OwnershipContract) GetAccessGrant(ctx contractapi.TransactionContextInterface, datasetID uint64, accessor string) (*model.AccessGrant, error) {
	return NewOwnershipRegistry(ctx).GetAccessGrant(datasetID, accessor)
}

func (c *OwnershipContract) TransferOwnership(ctx contractapi.TransactionContextInterface, datasetID uint64, newOwner string) error {
	ccLogger.Infof("Chaincode Call: ownership:TransferOwnership of %d to '%s'", datasetID, newOwner)
	return NewOwnershipRegistry(ctx).TransferOwnership(datasetID, newOwner)
}

func (c *OwnershipContract) GetDatasetHistory(ctx contractapi.TransactionContextInterface, datasetID uint64) ([]model.OwnershipHistoryEntry, error) {
	ccLogger.Debugf("Chaincode Call: ownership:GetDatasetHistory %d", datasetID)
	return NewOwnershipRegistry(ctx).GetDatasetHistory(datasetID)
}
