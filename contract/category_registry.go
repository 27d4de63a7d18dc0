package contract

import (
	"fmt"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var catLogger = flogging.MustGetLogger("datagov.category")

const (
	usageTypeObjectType           = "UsageType"
	anonymizationMethodObjectType = "AnonymizationMethod"
)

// CategoryRegistry is an admin-curated taxonomy. It backs both usage types
// and anonymization methods; the admin is that of the owning registry.
type CategoryRegistry struct {
	Ctx        contractapi.TransactionContextInterface
	Registry   string
	ObjectType string
	admin      *AdminSingleton
}

// NewUsageTypeRegistry returns the usage-type taxonomy of the usage registry.
func NewUsageTypeRegistry(ctx contractapi.TransactionContextInterface) *CategoryRegistry {
	return newCategoryRegistry(ctx, RegistryUsage, usageTypeObjectType)
}

// NewAnonymizationMethodRegistry returns the method taxonomy of the
// anonymization registry.
func NewAnonymizationMethodRegistry(ctx contractapi.TransactionContextInterface) *CategoryRegistry {
	return newCategoryRegistry(ctx, RegistryAnonymization, anonymizationMethodObjectType)
}

func newCategoryRegistry(ctx contractapi.TransactionContextInterface, registry, objectType string) *CategoryRegistry {
	return &CategoryRegistry{
		Ctx:        ctx,
		Registry:   registry,
		ObjectType: objectType,
		admin:      NewAdminSingleton(ctx, registry),
	}
}

func (cr *CategoryRegistry) createCategoryCompositeKey(categoryID uint64) (string, error) {
	return createCompositeKey(cr.Ctx, cr.ObjectType, formatID(categoryID))
}

// Register stores a category under categoryID. An existing category with the
// same id is overwritten, which also reactivates it.
func (cr *CategoryRegistry) Register(categoryID uint64, name, description string) error {
	actor, err := cr.admin.Require()
	if err != nil {
		return err
	}
	if err := validateRequiredString(cr.Registry, name, "name", maxNameLength); err != nil {
		return err
	}
	if err := validateOptionalString(cr.Registry, description, "description", maxDescriptionLength); err != nil {
		return err
	}
	now, err := getLogicalTime(cr.Ctx)
	if err != nil {
		return err
	}

	category := model.Category{
		ObjectType:  cr.ObjectType,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Active:      true,
	}
	key, err := cr.createCategoryCompositeKey(categoryID)
	if err != nil {
		return err
	}
	if err := writeLedgerJSON(cr.Ctx, key, category); err != nil {
		return fmt.Errorf("failed to save %s %d: %w", cr.ObjectType, categoryID, err)
	}
	emitRegistryEvent(cr.Ctx, "CategoryRegistered", cr.Registry, actor, now, map[string]interface{}{
		"objectType": cr.ObjectType,
		"categoryId": categoryID,
		"name":       name,
	})
	catLogger.Infof("%s %d ('%s') registered by admin '%s'.", cr.ObjectType, categoryID, name, actor.fullID)
	return nil
}

// Deactivate marks a category inactive. Inactive categories stay readable
// and remain valid references for new provenance records.
func (cr *CategoryRegistry) Deactivate(categoryID uint64) error {
	actor, err := cr.admin.Require()
	if err != nil {
		return err
	}
	existing, err := cr.Get(categoryID)
	if err != nil {
		return err
	}
	if existing == nil {
		return newRegistryError(cr.Registry, KindNotFound, "%s %d does not exist", cr.ObjectType, categoryID)
	}
	now, err := getLogicalTime(cr.Ctx)
	if err != nil {
		return err
	}

	deactivated := *existing
	deactivated.Active = false
	key, err := cr.createCategoryCompositeKey(categoryID)
	if err != nil {
		return err
	}
	if err := writeLedgerJSON(cr.Ctx, key, deactivated); err != nil {
		return fmt.Errorf("failed to save deactivated %s %d: %w", cr.ObjectType, categoryID, err)
	}
	emitRegistryEvent(cr.Ctx, "CategoryDeactivated", cr.Registry, actor, now, map[string]interface{}{
		"objectType": cr.ObjectType,
		"categoryId": categoryID,
	})
	catLogger.Infof("%s %d deactivated by admin '%s'.", cr.ObjectType, categoryID, actor.fullID)
	return nil
}

// Get returns the category, active or not, or nil when absent.
func (cr *CategoryRegistry) Get(categoryID uint64) (*model.Category, error) {
	key, err := cr.createCategoryCompositeKey(categoryID)
	if err != nil {
		return nil, err
	}
	var category model.Category
	found, err := readLedgerJSON(cr.Ctx, key, &category)
	if err != nil {
		return nil, fmt.Errorf("ledger error retrieving %s %d: %w", cr.ObjectType, categoryID, err)
	}
	if !found {
		return nil, nil
	}
	return &category, nil
}

// Exists reports whether categoryID was ever registered.
func (cr *CategoryRegistry) Exists(categoryID uint64) (bool, error) {
	category, err := cr.Get(categoryID)
	if err != nil {
		return false, err
	}
	return category != nil, nil
}

// GetAll returns every category of this kind.
func (cr *CategoryRegistry) GetAll() ([]model.Category, error) {
	return readAllByObjectType[model.Category](cr.Ctx, cr.ObjectType)
}
