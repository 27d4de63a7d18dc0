package contract

import (
	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// UsageContract exposes the usage-type taxonomy and the usage log.
type UsageContract struct {
	contractapi.Contract
	opts registryOptions
}

// NewUsageContract returns the contract under the "usage" namespace.
func NewUsageContract(opts ...Option) *UsageContract {
	c := &UsageContract{opts: newRegistryOptions(opts)}
	c.Name = RegistryUsage
	return c
}

func (c *UsageContract) InitRegistry(ctx contractapi.TransactionContextInterface) error {
	ccLogger.Info("Chaincode Call: usage:InitRegistry")
	return initializeRegistry(ctx, RegistryUsage, c.opts)
}

func (c *UsageContract) TransferAdmin(ctx contractapi.TransactionContextInterface, newAdmin string) error {
	ccLogger.Infof("Chaincode Call: usage:TransferAdmin to '%s'", newAdmin)
	return NewAdminSingleton(ctx, RegistryUsage).Transfer(newAdmin)
}

func (c *UsageContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	return NewAdminSingleton(ctx, RegistryUsage).Current()
}

func (c *UsageContract) RegisterUsageType(ctx contractapi.TransactionContextInterface, usageTypeID uint64, name, description string) error {
	ccLogger.Infof("Chaincode Call: usage:RegisterUsageType %d ('%s')", usageTypeID, name)
	return NewUsageTypeRegistry(ctx).Register(usageTypeID, name, description)
}

func (c *UsageContract) DeactivateUsageType(ctx contractapi.TransactionContextInterface, usageTypeID uint64) error {
	ccLogger.Infof("Chaincode Call: usage:DeactivateUsageType %d", usageTypeID)
	return NewUsageTypeRegistry(ctx).Deactivate(usageTypeID)
}

func (c *UsageContract) GetUsageType(ctx contractapi.TransactionContextInterface, usageTypeID uint64) (*model.Category, error) {
	return NewUsageTypeRegistry(ctx).Get(usageTypeID)
}

func (c *UsageContract) GetAllUsageTypes(ctx contractapi.TransactionContextInterface) ([]model.Category, error) {
	return NewUsageTypeRegistry(ctx).GetAll()
}

func (c *UsageContract) RecordUsage(ctx contractapi.TransactionContextInterface, datasetID uint64, usageTypeID uint64, details string) (uint64, error) {
	ccLogger.Infof("Chaincode Call: usage:RecordUsage on dataset %d (type %d)", datasetID, usageTypeID)
	return NewProvenanceRegistry(ctx).RecordUsage(datasetID, usageTypeID, details)
}

func (c *UsageContract) GetUsageRecord(ctx contractapi.TransactionContextInterface, recordID uint64) (*model.UsageRecord, error) {
	return NewProvenanceRegistry(ctx).GetUsageRecord(recordID)
}

func (c *UsageContract) GetDatasetUsage(ctx contractapi.TransactionContextInterface, datasetID uint64, recordID uint64) (*model.UsageRecord, error) {
	ccLogger.Debugf("Chaincode Call: usage:GetDatasetUsage dataset %d record %d", datasetID, recordID)
	return NewProvenanceRegistry(ctx).GetDatasetUsage(datasetID, recordID)
}

func (c *UsageContract) GetUsageCount(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return NewProvenanceRegistry(ctx).UsageCount()
}
