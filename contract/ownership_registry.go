package contract

import (
	"encoding/json"
	"fmt"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var ownLogger = flogging.MustGetLogger("datagov.ownership")

const (
	datasetObjectType     = "Dataset"
	accessGrantObjectType = "AccessGrant"
)

// OwnershipRegistry tracks dataset owners and the time-bounded access grants
// they issue.
type OwnershipRegistry struct {
	Ctx   contractapi.TransactionContextInterface
	admin *AdminSingleton
}

// NewOwnershipRegistry creates a new instance of OwnershipRegistry.
func NewOwnershipRegistry(ctx contractapi.TransactionContextInterface) *OwnershipRegistry {
	return &OwnershipRegistry{Ctx: ctx, admin: NewAdminSingleton(ctx, RegistryOwnership)}
}

// Admin exposes the registry's admin singleton.
func (or *OwnershipRegistry) Admin() *AdminSingleton {
	return or.admin
}

func (or *OwnershipRegistry) createDatasetCompositeKey(datasetID uint64) (string, error) {
	return createCompositeKey(or.Ctx, datasetObjectType, formatID(datasetID))
}

func (or *OwnershipRegistry) createGrantCompositeKey(datasetID uint64, accessor string) (string, error) {
	return createCompositeKey(or.Ctx, accessGrantObjectType, formatID(datasetID), accessor)
}

func (or *OwnershipRegistry) getDataset(datasetID uint64) (*model.Dataset, error) {
	key, err := or.createDatasetCompositeKey(datasetID)
	if err != nil {
		return nil, err
	}
	var dataset model.Dataset
	found, err := readLedgerJSON(or.Ctx, key, &dataset)
	if err != nil {
		return nil, fmt.Errorf("ledger error retrieving dataset %d: %w", datasetID, err)
	}
	if !found {
		return nil, nil
	}
	return &dataset, nil
}

func (or *OwnershipRegistry) getGrant(datasetID uint64, accessor string) (*model.AccessGrant, error) {
	key, err := or.createGrantCompositeKey(datasetID, accessor)
	if err != nil {
		return nil, err
	}
	var grant model.AccessGrant
	found, err := readLedgerJSON(or.Ctx, key, &grant)
	if err != nil {
		return nil, fmt.Errorf("ledger error retrieving grant for dataset %d and accessor '%s': %w", datasetID, accessor, err)
	}
	if !found {
		return nil, nil
	}
	return &grant, nil
}

func (or *OwnershipRegistry) putDataset(dataset model.Dataset) error {
	key, err := or.createDatasetCompositeKey(dataset.DatasetID)
	if err != nil {
		return err
	}
	if err := writeLedgerJSON(or.Ctx, key, dataset); err != nil {
		return fmt.Errorf("failed to save dataset %d: %w", dataset.DatasetID, err)
	}
	return nil
}

func (or *OwnershipRegistry) putGrant(grant model.AccessGrant) error {
	key, err := or.createGrantCompositeKey(grant.DatasetID, grant.Accessor)
	if err != nil {
		return err
	}
	if err := writeLedgerJSON(or.Ctx, key, grant); err != nil {
		return fmt.Errorf("failed to save grant for dataset %d and accessor '%s': %w", grant.DatasetID, grant.Accessor, err)
	}
	return nil
}

// requireOwner resolves the caller and fails with NotOwner unless the caller
// currently owns datasetID.
func (or *OwnershipRegistry) requireOwner(datasetID uint64) (*actorInfo, *model.Dataset, error) {
	actor, err := getCurrentActor(or.Ctx)
	if err != nil {
		return nil, nil, err
	}
	dataset, err := or.getDataset(datasetID)
	if err != nil {
		return nil, nil, err
	}
	if dataset == nil || dataset.Owner != actor.fullID {
		return nil, nil, newRegistryError(RegistryOwnership, KindNotOwner, "caller '%s' does not own dataset %d", actor.fullID, datasetID)
	}
	return actor, dataset, nil
}

// RegisterDataset makes the caller the owner of datasetID. A prior owner is
// overwritten without any check: dataset ids are coordinated by callers, and
// re-registering an existing id transfers it to the new caller.
func (or *OwnershipRegistry) RegisterDataset(datasetID uint64) error {
	actor, err := getCurrentActor(or.Ctx)
	if err != nil {
		return err
	}
	now, err := getLogicalTime(or.Ctx)
	if err != nil {
		return err
	}

	previous, err := or.getDataset(datasetID)
	if err != nil {
		return err
	}
	if previous != nil && previous.Owner != actor.fullID {
		ownLogger.Warningf("Dataset %d re-registered: owner changes from '%s' to '%s'.", datasetID, previous.Owner, actor.fullID)
	}

	dataset := model.Dataset{
		ObjectType:   datasetObjectType,
		DatasetID:    datasetID,
		Owner:        actor.fullID,
		RegisteredAt: now,
	}
	if err := or.putDataset(dataset); err != nil {
		return err
	}
	emitRegistryEvent(or.Ctx, "DatasetRegistered", RegistryOwnership, actor, now, map[string]interface{}{
		"datasetId": datasetID,
		"owner":     actor.fullID,
	})
	ownLogger.Infof("Dataset %d registered by '%s'.", datasetID, actor.fullID)
	return nil
}

// IsOwner reports whether the caller owns datasetID. Unknown datasets are
// simply not owned.
func (or *OwnershipRegistry) IsOwner(datasetID uint64) (bool, error) {
	actor, err := getCurrentActor(or.Ctx)
	if err != nil {
		return false, err
	}
	dataset, err := or.getDataset(datasetID)
	if err != nil {
		return false, err
	}
	return dataset != nil && dataset.Owner == actor.fullID, nil
}

// GetDataset returns the dataset record, or nil when absent.
func (or *OwnershipRegistry) GetDataset(datasetID uint64) (*model.Dataset, error) {
	return or.getDataset(datasetID)
}

// GrantAccess upserts the grant for (datasetID, accessor). A second grant for
// the same key replaces the first entirely.
func (or *OwnershipRegistry) GrantAccess(datasetID uint64, accessor string, level uint32, expiration uint64) error {
	actor, _, err := or.requireOwner(datasetID)
	if err != nil {
		return err
	}
	if err := validateRequiredString(RegistryOwnership, accessor, "accessor", maxIdentityLength); err != nil {
		return err
	}
	now, err := getLogicalTime(or.Ctx)
	if err != nil {
		return err
	}

	grant := model.AccessGrant{
		ObjectType:  accessGrantObjectType,
		DatasetID:   datasetID,
		Accessor:    accessor,
		GrantedBy:   actor.fullID,
		AccessLevel: level,
		Expiration:  expiration,
		Active:      true,
	}
	if err := or.putGrant(grant); err != nil {
		return err
	}
	if expiration <= now {
		ownLogger.Warningf("Grant on dataset %d for '%s' expires at %d, not after current time %d; it will never be valid.", datasetID, accessor, expiration, now)
	}
	emitRegistryEvent(or.Ctx, "AccessGranted", RegistryOwnership, actor, now, map[string]interface{}{
		"datasetId":   datasetID,
		"accessor":    accessor,
		"accessLevel": level,
		"expiration":  expiration,
	})
	ownLogger.Infof("Access level %d on dataset %d granted to '%s' until %d by '%s'.", level, datasetID, accessor, expiration, actor.fullID)
	return nil
}

// RevokeAccess deactivates an existing grant in place.
func (or *OwnershipRegistry) RevokeAccess(datasetID uint64, accessor string) error {
	actor, _, err := or.requireOwner(datasetID)
	if err != nil {
		return err
	}
	grant, err := or.getGrant(datasetID, accessor)
	if err != nil {
		return err
	}
	if grant == nil {
		return newRegistryError(RegistryOwnership, KindPermissionNotFound, "no grant on dataset %d for accessor '%s'", datasetID, accessor)
	}
	now, err := getLogicalTime(or.Ctx)
	if err != nil {
		return err
	}

	revoked := *grant
	revoked.Active = false
	if err := or.putGrant(revoked); err != nil {
		return err
	}
	emitRegistryEvent(or.Ctx, "AccessRevoked", RegistryOwnership, actor, now, map[string]interface{}{
		"datasetId": datasetID,
		"accessor":  accessor,
	})
	ownLogger.Infof("Access on dataset %d revoked for '%s' by '%s'.", datasetID, accessor, actor.fullID)
	return nil
}

// HasAccess reports whether accessor holds an active, unexpired grant on
// datasetID. A grant expiring exactly now is expired.
func (or *OwnershipRegistry) HasAccess(datasetID uint64, accessor string) (bool, error) {
	grant, err := or.getGrant(datasetID, accessor)
	if err != nil {
		return false, err
	}
	if grant == nil {
		return false, nil
	}
	now, err := getLogicalTime(or.Ctx)
	if err != nil {
		return false, err
	}
	return grant.Active && grant.Expiration > now, nil
}

// GetAccessGrant returns the stored grant, or nil when absent. Expiry is not
// applied; use HasAccess for validity.
func (or *OwnershipRegistry) GetAccessGrant(datasetID uint64, accessor string) (*model.AccessGrant, error) {
	return or.getGrant(datasetID, accessor)
}

// TransferOwnership hands datasetID to newOwner. Existing grants stay in
// place but can only be revoked by the new owner.
func (or *OwnershipRegistry) TransferOwnership(datasetID uint64, newOwner string) error {
	actor, dataset, err := or.requireOwner(datasetID)
	if err != nil {
		return err
	}
	if err := validateRequiredString(RegistryOwnership, newOwner, "newOwner", maxIdentityLength); err != nil {
		return err
	}
	now, err := getLogicalTime(or.Ctx)
	if err != nil {
		return err
	}

	transferred := *dataset
	transferred.Owner = newOwner
	transferred.RegisteredAt = now
	if err := or.putDataset(transferred); err != nil {
		return err
	}
	emitRegistryEvent(or.Ctx, "OwnershipTransferred", RegistryOwnership, actor, now, map[string]interface{}{
		"datasetId":     datasetID,
		"previousOwner": actor.fullID,
		"newOwner":      newOwner,
	})
	ownLogger.Infof("Dataset %d transferred from '%s' to '%s'.", datasetID, actor.fullID, newOwner)
	return nil
}

// GetDatasetHistory walks the ledger history of the dataset record, oldest
// first as returned by the peer.
func (or *OwnershipRegistry) GetDatasetHistory(datasetID uint64) ([]model.OwnershipHistoryEntry, error) {
	key, err := or.createDatasetCompositeKey(datasetID)
	if err != nil {
		return nil, err
	}
	historyIter, err := or.Ctx.GetStub().GetHistoryForKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for dataset %d: %w", datasetID, err)
	}
	defer historyIter.Close()

	entries := []model.OwnershipHistoryEntry{}
	for historyIter.HasNext() {
		historyItem, iterErr := historyIter.Next()
		if iterErr != nil {
			ownLogger.Warningf("Error iterating history for dataset %d: %v. Skipping entry.", datasetID, iterErr)
			continue
		}
		entry := model.OwnershipHistoryEntry{
			TxID:     historyItem.TxId,
			IsDelete: historyItem.IsDelete,
		}
		if historyItem.Timestamp != nil {
			entry.Timestamp = historyItem.Timestamp.GetSeconds()
		}
		if !historyItem.IsDelete {
			var past model.Dataset
			if err := json.Unmarshal(historyItem.Value, &past); err != nil {
				ownLogger.Warningf("Failed to unmarshal historical dataset %d in tx '%s': %v. Skipping entry.", datasetID, historyItem.TxId, err)
				continue
			}
			entry.Owner = past.Owner
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
