package contract

import (
	"fmt"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var idLogger = flogging.MustGetLogger("datagov.identity")

const institutionObjectType = "Institution"

// IdentityRegistry verifies and deactivates institutional identities.
type IdentityRegistry struct {
	Ctx   contractapi.TransactionContextInterface
	admin *AdminSingleton
}

// NewIdentityRegistry creates a new instance of IdentityRegistry.
func NewIdentityRegistry(ctx contractapi.TransactionContextInterface) *IdentityRegistry {
	return &IdentityRegistry{Ctx: ctx, admin: NewAdminSingleton(ctx, RegistryIdentity)}
}

// Admin exposes the registry's admin singleton.
func (ir *IdentityRegistry) Admin() *AdminSingleton {
	return ir.admin
}

func (ir *IdentityRegistry) createInstitutionCompositeKey(identity string) (string, error) {
	return createCompositeKey(ir.Ctx, institutionObjectType, identity)
}

func (ir *IdentityRegistry) getInstitution(identity string) (*model.Institution, error) {
	key, err := ir.createInstitutionCompositeKey(identity)
	if err != nil {
		return nil, err
	}
	var institution model.Institution
	found, err := readLedgerJSON(ir.Ctx, key, &institution)
	if err != nil {
		return nil, fmt.Errorf("ledger error retrieving institution '%s': %w", identity, err)
	}
	if !found {
		return nil, nil
	}
	return &institution, nil
}

// Verify records identity as a verified institution. Verification is not
// idempotent: an identity that was ever verified, even if since revoked,
// cannot be verified again.
func (ir *IdentityRegistry) Verify(identity, name string, level uint8) error {
	actor, err := ir.admin.Require()
	if err != nil {
		return err
	}
	if err := validateRequiredString(RegistryIdentity, identity, "identity", maxIdentityLength); err != nil {
		return err
	}
	if err := validateRequiredString(RegistryIdentity, name, "name", maxNameLength); err != nil {
		return err
	}

	existing, err := ir.getInstitution(identity)
	if err != nil {
		return err
	}
	if existing != nil {
		return newRegistryError(RegistryIdentity, KindAlreadyVerified, "identity '%s' was already verified at %d", identity, existing.VerifiedAt)
	}

	now, err := getLogicalTime(ir.Ctx)
	if err != nil {
		return err
	}
	institution := model.Institution{
		ObjectType:        institutionObjectType,
		Identity:          identity,
		Name:              name,
		VerificationLevel: level,
		VerifiedAt:        now,
		Active:            true,
	}
	key, err := ir.createInstitutionCompositeKey(identity)
	if err != nil {
		return err
	}
	if err := writeLedgerJSON(ir.Ctx, key, institution); err != nil {
		return fmt.Errorf("failed to save institution '%s': %w", identity, err)
	}

	emitRegistryEvent(ir.Ctx, "InstitutionVerified", RegistryIdentity, actor, now, map[string]interface{}{
		"identity": identity,
		"name":     name,
		"level":    level,
	})
	idLogger.Infof("Institution '%s' (%s) verified at level %d by admin '%s'.", name, identity, level, actor.fullID)
	return nil
}

// Revoke deactivates a verified institution. The record is kept.
func (ir *IdentityRegistry) Revoke(identity string) error {
	actor, err := ir.admin.Require()
	if err != nil {
		return err
	}
	existing, err := ir.getInstitution(identity)
	if err != nil {
		return err
	}
	if existing == nil {
		return newRegistryError(RegistryIdentity, KindNotFound, "identity '%s' is not registered", identity)
	}

	revoked := *existing
	revoked.Active = false
	key, err := ir.createInstitutionCompositeKey(identity)
	if err != nil {
		return err
	}
	if err := writeLedgerJSON(ir.Ctx, key, revoked); err != nil {
		return fmt.Errorf("failed to save revoked institution '%s': %w", identity, err)
	}

	now, err := getLogicalTime(ir.Ctx)
	if err != nil {
		return err
	}
	emitRegistryEvent(ir.Ctx, "InstitutionRevoked", RegistryIdentity, actor, now, map[string]interface{}{"identity": identity})
	idLogger.Infof("Institution '%s' revoked by admin '%s'.", identity, actor.fullID)
	return nil
}

// IsVerified returns the current active flag, not whether the identity was
// ever verified. Unknown identities fail with NotFound.
func (ir *IdentityRegistry) IsVerified(identity string) (bool, error) {
	existing, err := ir.getInstitution(identity)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, newRegistryError(RegistryIdentity, KindNotFound, "identity '%s' is not registered", identity)
	}
	return existing.Active, nil
}

// GetDetails returns the institution record, or nil when absent.
func (ir *IdentityRegistry) GetDetails(identity string) (*model.Institution, error) {
	return ir.getInstitution(identity)
}

// GetAll returns every institution ever verified, active or not.
func (ir *IdentityRegistry) GetAll() ([]model.Institution, error) {
	institutions, err := readAllByObjectType[model.Institution](ir.Ctx, institutionObjectType)
	if err != nil {
		return nil, err
	}
	idLogger.Debugf("Retrieved %d institutions.", len(institutions))
	return institutions, nil
}
