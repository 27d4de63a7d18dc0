package contract

import (
	"fmt"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var adminLogger = flogging.MustGetLogger("datagov.admin")

const adminObjectType = "Admin"

// AdminSingleton manages the single admin of one registry. Each registry
// keeps its own record; revoking admin on one never affects another.
type AdminSingleton struct {
	Ctx      contractapi.TransactionContextInterface
	Registry string
	// BootstrapMSPID, when set, is the only MSP whose members may initialize
	// the registry.
	BootstrapMSPID string
}

// NewAdminSingleton returns the admin singleton of the named registry.
func NewAdminSingleton(ctx contractapi.TransactionContextInterface, registry string) *AdminSingleton {
	return &AdminSingleton{Ctx: ctx, Registry: registry}
}

func (a *AdminSingleton) key() (string, error) {
	return createCompositeKey(a.Ctx, adminObjectType, a.Registry)
}

// Get returns the admin record, or nil when the registry was never initialized.
func (a *AdminSingleton) Get() (*model.AdminRecord, error) {
	key, err := a.key()
	if err != nil {
		return nil, err
	}
	var record model.AdminRecord
	found, err := readLedgerJSON(a.Ctx, key, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin of registry '%s': %w", a.Registry, err)
	}
	if !found {
		return nil, nil
	}
	return &record, nil
}

// Current returns the admin identity, or "" when unset.
func (a *AdminSingleton) Current() (string, error) {
	record, err := a.Get()
	if err != nil || record == nil {
		return "", err
	}
	return record.Admin, nil
}

// Require resolves the caller and fails with NotAuthorized unless the caller
// is this registry's admin.
func (a *AdminSingleton) Require() (*actorInfo, error) {
	actor, err := getCurrentActor(a.Ctx)
	if err != nil {
		return nil, err
	}
	admin, err := a.Current()
	if err != nil {
		return nil, err
	}
	if admin == "" || admin != actor.fullID {
		return nil, newRegistryError(a.Registry, KindNotAuthorized, "caller '%s' is not the %s registry admin", actor.fullID, a.Registry)
	}
	return actor, nil
}

// Initialize makes the caller the admin of an uninitialized registry.
func (a *AdminSingleton) Initialize() error {
	actor, err := getCurrentActor(a.Ctx)
	if err != nil {
		return err
	}
	if a.BootstrapMSPID != "" && actor.mspID != a.BootstrapMSPID {
		return newRegistryError(a.Registry, KindNotAuthorized, "caller MSP '%s' may not initialize the registry, want '%s'", actor.mspID, a.BootstrapMSPID)
	}
	existing, err := a.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		return newRegistryError(a.Registry, KindAlreadyInitialized, "registry already has admin '%s'", existing.Admin)
	}
	now, err := getLogicalTime(a.Ctx)
	if err != nil {
		return err
	}
	if err := a.put(actor.fullID, now); err != nil {
		return err
	}
	emitRegistryEvent(a.Ctx, "RegistryInitialized", a.Registry, actor, now, map[string]interface{}{"admin": actor.fullID})
	adminLogger.Infof("Registry '%s' initialized with admin '%s'.", a.Registry, actor.fullID)
	return nil
}

// Transfer replaces the admin. Only the current admin may call it, and the
// new admin is not validated beyond being non-empty.
func (a *AdminSingleton) Transfer(newAdmin string) error {
	actor, err := a.Require()
	if err != nil {
		return err
	}
	if err := validateRequiredString(a.Registry, newAdmin, "newAdmin", maxIdentityLength); err != nil {
		return err
	}
	now, err := getLogicalTime(a.Ctx)
	if err != nil {
		return err
	}
	if err := a.put(newAdmin, now); err != nil {
		return err
	}
	emitRegistryEvent(a.Ctx, "AdminTransferred", a.Registry, actor, now, map[string]interface{}{
		"previousAdmin": actor.fullID,
		"newAdmin":      newAdmin,
	})
	adminLogger.Infof("Admin of registry '%s' transferred from '%s' to '%s'.", a.Registry, actor.fullID, newAdmin)
	return nil
}

func (a *AdminSingleton) put(admin string, now uint64) error {
	key, err := a.key()
	if err != nil {
		return err
	}
	record := model.AdminRecord{
		ObjectType: adminObjectType,
		Registry:   a.Registry,
		Admin:      admin,
		UpdatedAt:  now,
	}
	if err := writeLedgerJSON(a.Ctx, key, record); err != nil {
		return fmt.Errorf("failed to save admin of registry '%s': %w", a.Registry, err)
	}
	return nil
}

// Option configures the registry contracts.
type Option func(*registryOptions)

type registryOptions struct {
	bootstrapMSPID string
}

// WithBootstrapMSPID restricts InitRegistry to members of mspID. An empty
// mspID leaves initialization open to the first caller.
func WithBootstrapMSPID(mspID string) Option {
	return func(o *registryOptions) {
		o.bootstrapMSPID = mspID
	}
}

func newRegistryOptions(opts []Option) registryOptions {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func initializeRegistry(ctx contractapi.TransactionContextInterface, registry string, o registryOptions) error {
	admin := NewAdminSingleton(ctx, registry)
	admin.BootstrapMSPID = o.bootstrapMSPID
	return admin.Initialize()
}
