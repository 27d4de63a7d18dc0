package contract

import (
	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// AnonymizationContract exposes the anonymization-method taxonomy and the
// anonymized-dataset log.
type AnonymizationContract struct {
	contractapi.Contract
	opts registryOptions
}

// NewAnonymizationContract returns the contract under the "anonymization" namespace.
func NewAnonymizationContract(opts ...Option) *AnonymizationContract {
	c := &AnonymizationContract{opts: newRegistryOptions(opts)}
	c.Name = RegistryAnonymization
	return c
}

func (c *AnonymizationContract) InitRegistry(ctx contractapi.TransactionContextInterface) error {
	ccLogger.Info("Chaincode Call: anonymization:InitRegistry")
	return initializeRegistry(ctx, RegistryAnonymization, c.opts)
}

func (c *AnonymizationContract) TransferAdmin(ctx contractapi.TransactionContextInterface, newAdmin string) error {
	ccLogger.Infof("Chaincode Call: anonymization:TransferAdmin to '%s'", newAdmin)
	return NewAdminSingleton(ctx, RegistryAnonymization).Transfer(newAdmin)
}

func (c *AnonymizationContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	return NewAdminSingleton(ctx, RegistryAnonymization).Current()
}

func (c *AnonymizationContract) RegisterMethod(ctx contractapi.TransactionContextInterface, methodID uint64, name, description string) error {
	ccLogger.Infof("Chaincode Call: anonymization:RegisterMethod %d ('%s')", methodID, name)
	return NewAnonymizationMethodRegistry(ctx).Register(methodID, name, description)
}

func (c *AnonymizationContract) DeactivateMethod(ctx contractapi.TransactionContextInterface, methodID uint64) error {
	ccLogger.Infof("Chaincode Call: anonymization:DeactivateMethod %d", methodID)
	return NewAnonymizationMethodRegistry(ctx).Deactivate(methodID)
}

func (c *AnonymizationContract) GetMethod(ctx contractapi.TransactionContextInterface, methodID uint64) (*model.Category, error) {
	return NewAnonymizationMethodRegistry(ctx).Get(methodID)
}

func (c *AnonymizationContract) GetAllMethods(ctx contractapi.TransactionContextInterface) ([]model.Category, error) {
	return NewAnonymizationMethodRegistry(ctx).GetAll()
}

func (c *AnonymizationContract) RegisterAnonymizedDataset(ctx contractapi.TransactionContextInterface, originalHash, anonymizedHash string, methodID uint64) (uint64, error) {
	ccLogger.Infof("Chaincode Call: anonymization:RegisterAnonymizedDataset with method %d", methodID)
	return NewProvenanceRegistry(ctx).RegisterAnonymizedDataset(originalHash, anonymizedHash, methodID)
}

func (c *AnonymizationContract) GetAnonymizedRecord(ctx contractapi.TransactionContextInterface, recordID uint64) (*model.AnonymizedDatasetRecord, error) {
	return NewProvenanceRegistry(ctx).GetAnonymizedRecord(recordID)
}

func (c *AnonymizationContract) VerifyAnonymization(ctx contractapi.TransactionContextInterface, datasetID uint64, claimedHash string) (bool, error) {
	ccLogger.Debugf("Chaincode Call: anonymization:VerifyAnonymization for %d", datasetID)
	return NewProvenanceRegistry(ctx).VerifyAnonymization(datasetID, claimedHash)
}

func (c *AnonymizationContract) GetAnonymizedCount(ctx contractapi.TransactionContextInterface) (uint64, error) {
	return NewProvenanceRegistry(ctx).AnonymizedCount()
}
