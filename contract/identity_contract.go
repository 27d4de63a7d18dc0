package contract

import (
	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var ccLogger = flogging.MustGetLogger("datagov.contract")

// IdentityContract exposes the institution identity registry.
type IdentityContract struct {
	contractapi.Contract
	opts registryOptions
}

// NewIdentityContract returns the contract under the "identity" namespace.
func NewIdentityContract(opts ...Option) *IdentityContract {
	c := &IdentityContract{opts: newRegistryOptions(opts)}
	c.Name = RegistryIdentity
	return c
}

func (c *IdentityContract) InitRegistry(ctx contractapi.TransactionContextInterface) error {
	ccLogger.Info("Chaincode Call: identity:InitRegistry")
	return initializeRegistry(ctx, RegistryIdentity, c.opts)
}

func (c *IdentityContract) TransferAdmin(ctx contractapi.TransactionContextInterface, newAdmin string) error {
	ccLogger.Infof("Chaincode Call: identity:TransferAdmin to '%s'", newAdmin)
	return NewIdentityRegistry(ctx).Admin().Transfer(newAdmin)
}

func (c *IdentityContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	return NewIdentityRegistry(ctx).Admin().Current()
}

func (c *IdentityContract) VerifyInstitution(ctx contractapi.TransactionContextInterface, identity, name string, level uint8) error {
	ccLogger.Infof("Chaincode Call: identity:VerifyInstitution for '%s' ('%s') at level %d", identity, name, level)
	return NewIdentityRegistry(ctx).Verify(identity, name, level)
}

func (c *IdentityContract) RevokeInstitution(ctx contractapi.TransactionContextInterface, identity string) error {
	ccLogger.Infof("Chaincode Call: identity:RevokeInstitution for '%s'", identity)
	return NewIdentityRegistry(ctx).Revoke(identity)
}

func (c *IdentityContract) IsVerified(ctx contractapi.TransactionContextInterface, identity string) (bool, error) {
	ccLogger.Debugf("Chaincode Call: identity:IsVerified for '%s'", identity)
	return NewIdentityRegistry(ctx).IsVerified(identity)
}

func (c *IdentityContract) GetInstitution(ctx contractapi.TransactionContextInterface, identity string) (*model.Institution, error) {
	ccLogger.Debugf("Chaincode Call: identity:GetInstitution for '%s'", identity)
	return NewIdentityRegistry(ctx).GetDetails(identity)
}

// GetAllInstitutions is public; the registry itself is public information.
func (c *IdentityContract) GetAllInstitutions(ctx contractapi.TransactionContextInterface) ([]model.Institution, error) {
	ccLogger.Debug("Chaincode Call: identity:GetAllInstitutions")
	return NewIdentityRegistry(ctx).GetAll()
}
