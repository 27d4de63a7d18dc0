package contract

import (
	"fmt"
	"math"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var provLogger = flogging.MustGetLogger("datagov.provenance")

const (
	counterObjectType           = "Counter"
	usageRecordObjectType       = "UsageRecord"
	anonymizedDatasetObjectType = "AnonymizedDataset"
)

// appendLog is an append-only log of immutable records with ids 1, 2, 3, ...
// The counter is written only together with a new record.
type appendLog struct {
	ctx        contractapi.TransactionContextInterface
	name       string
	objectType string
}

func (l *appendLog) counterKey() (string, error) {
	return createCompositeKey(l.ctx, counterObjectType, l.name)
}

func (l *appendLog) recordKey(recordID uint64) (string, error) {
	return createCompositeKey(l.ctx, l.objectType, formatID(recordID))
}

// last returns the most recently assigned id, 0 when the log is empty.
func (l *appendLog) last() (uint64, error) {
	key, err := l.counterKey()
	if err != nil {
		return 0, err
	}
	var counter model.LogCounter
	if _, err := readLedgerJSON(l.ctx, key, &counter); err != nil {
		return 0, fmt.Errorf("failed to read %s counter: %w", l.name, err)
	}
	return counter.Last, nil
}

// append stores the record built for the next id and advances the counter.
func (l *appendLog) append(build func(recordID uint64) interface{}) (uint64, error) {
	last, err := l.last()
	if err != nil {
		return 0, err
	}
	if last == math.MaxUint64 {
		return 0, fmt.Errorf("%s log is full", l.name)
	}
	next := last + 1

	recordKey, err := l.recordKey(next)
	if err != nil {
		return 0, err
	}
	if err := writeLedgerJSON(l.ctx, recordKey, build(next)); err != nil {
		return 0, fmt.Errorf("failed to save %s record %d: %w", l.name, next, err)
	}
	counterKey, err := l.counterKey()
	if err != nil {
		return 0, err
	}
	counter := model.LogCounter{ObjectType: counterObjectType, Log: l.name, Last: next}
	if err := writeLedgerJSON(l.ctx, counterKey, counter); err != nil {
		return 0, fmt.Errorf("failed to advance %s counter to %d: %w", l.name, next, err)
	}
	return next, nil
}

func (l *appendLog) get(recordID uint64, out interface{}) (bool, error) {
	key, err := l.recordKey(recordID)
	if err != nil {
		return false, err
	}
	found, err := readLedgerJSON(l.ctx, key, out)
	if err != nil {
		return false, fmt.Errorf("ledger error retrieving %s record %d: %w", l.name, recordID, err)
	}
	return found, nil
}

// ProvenanceRegistry holds the usage log and the anonymized-dataset log.
// Each log has its own counter and checks category references against the
// taxonomy of its registry.
type ProvenanceRegistry struct {
	Ctx        contractapi.TransactionContextInterface
	usageTypes *CategoryRegistry
	methods    *CategoryRegistry
	usage      *appendLog
	anonymized *appendLog
}

// NewProvenanceRegistry creates a new instance of ProvenanceRegistry.
func NewProvenanceRegistry(ctx contractapi.TransactionContextInterface) *ProvenanceRegistry {
	return &ProvenanceRegistry{
		Ctx:        ctx,
		usageTypes: NewUsageTypeRegistry(ctx),
		methods:    NewAnonymizationMethodRegistry(ctx),
		usage:      &appendLog{ctx: ctx, name: RegistryUsage, objectType: usageRecordObjectType},
		anonymized: &appendLog{ctx: ctx, name: RegistryAnonymization, objectType: anonymizedDatasetObjectType},
	}
}

// RecordUsage appends a usage record for datasetID. The usage type must exist
// but need not be active. The dataset id is not checked against the
// ownership registry.
func (pr *ProvenanceRegistry) RecordUsage(datasetID, usageTypeID uint64, details string) (uint64, error) {
	actor, err := getCurrentActor(pr.Ctx)
	if err != nil {
		return 0, err
	}
	exists, err := pr.usageTypes.Exists(usageTypeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, newRegistryError(RegistryUsage, KindCategoryNotFound, "usage type %d does not exist", usageTypeID)
	}
	if err := validateOptionalString(RegistryUsage, details, "details", maxDetailsLength); err != nil {
		return 0, err
	}
	now, err := getLogicalTime(pr.Ctx)
	if err != nil {
		return 0, err
	}

	recordID, err := pr.usage.append(func(recordID uint64) interface{} {
		return model.UsageRecord{
			ObjectType:  usageRecordObjectType,
			RecordID:    recordID,
			DatasetID:   datasetID,
			User:        actor.fullID,
			UsageTypeID: usageTypeID,
			Timestamp:   now,
			Details:     details,
		}
	})
	if err != nil {
		return 0, err
	}
	emitRegistryEvent(pr.Ctx, "UsageRecorded", RegistryUsage, actor, now, map[string]interface{}{
		"recordId":    recordID,
		"datasetId":   datasetID,
		"usageTypeId": usageTypeID,
	})
	provLogger.Infof("Usage record %d for dataset %d (type %d) recorded by '%s'.", recordID, datasetID, usageTypeID, actor.fullID)
	return recordID, nil
}

// GetUsageRecord returns the usage record, or nil when absent.
func (pr *ProvenanceRegistry) GetUsageRecord(recordID uint64) (*model.UsageRecord, error) {
	var record model.UsageRecord
	found, err := pr.usage.get(recordID, &record)
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

// GetDatasetUsage returns usage record recordID only if it belongs to
// datasetID. It is a lookup by id, not a per-dataset query.
func (pr *ProvenanceRegistry) GetDatasetUsage(datasetID, recordID uint64) (*model.UsageRecord, error) {
	record, err := pr.GetUsageRecord(recordID)
	if err != nil || record == nil {
		return nil, err
	}
	if record.DatasetID != datasetID {
		return nil, nil
	}
	return record, nil
}

// UsageCount returns the last usage record id assigned.
func (pr *ProvenanceRegistry) UsageCount() (uint64, error) {
	return pr.usage.last()
}

// RegisterAnonymizedDataset appends an anonymization record. The method must
// exist but need not be active.
func (pr *ProvenanceRegistry) RegisterAnonymizedDataset(originalHash, anonymizedHash string, methodID uint64) (uint64, error) {
	actor, err := getCurrentActor(pr.Ctx)
	if err != nil {
		return 0, err
	}
	exists, err := pr.methods.Exists(methodID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, newRegistryError(RegistryAnonymization, KindCategoryNotFound, "anonymization method %d does not exist", methodID)
	}
	original, err := parseHash(RegistryAnonymization, originalHash, "originalHash")
	if err != nil {
		return 0, err
	}
	anonymized, err := parseHash(RegistryAnonymization, anonymizedHash, "anonymizedHash")
	if err != nil {
		return 0, err
	}
	now, err := getLogicalTime(pr.Ctx)
	if err != nil {
		return 0, err
	}

	recordID, err := pr.anonymized.append(func(recordID uint64) interface{} {
		return model.AnonymizedDatasetRecord{
			ObjectType:     anonymizedDatasetObjectType,
			RecordID:       recordID,
			OriginalHash:   original,
			AnonymizedHash: anonymized,
			MethodID:       methodID,
			Anonymizer:     actor.fullID,
			Timestamp:      now,
		}
	})
	if err != nil {
		return 0, err
	}
	emitRegistryEvent(pr.Ctx, "AnonymizedDatasetRegistered", RegistryAnonymization, actor, now, map[string]interface{}{
		"recordId":       recordID,
		"anonymizedHash": anonymized,
		"methodId":       methodID,
	})
	provLogger.Infof("Anonymized dataset %d (method %d) registered by '%s'.", recordID, methodID, actor.fullID)
	return recordID, nil
}

// GetAnonymizedRecord returns the anonymization record, or nil when absent.
func (pr *ProvenanceRegistry) GetAnonymizedRecord(recordID uint64) (*model.AnonymizedDatasetRecord, error) {
	var record model.AnonymizedDatasetRecord
	found, err := pr.anonymized.get(recordID, &record)
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

// VerifyAnonymization compares claimedHash with the stored anonymized hash of
// record datasetID. The original hash is never consulted.
func (pr *ProvenanceRegistry) VerifyAnonymization(datasetID uint64, claimedHash string) (bool, error) {
	record, err := pr.GetAnonymizedRecord(datasetID)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, newRegistryError(RegistryAnonymization, KindNotFound, "anonymized dataset %d does not exist", datasetID)
	}
	claimed, err := parseHash(RegistryAnonymization, claimedHash, "claimedHash")
	if err != nil {
		// A malformed claim can never equal a stored hash.
		provLogger.Debugf("VerifyAnonymization: malformed claim for record %d: %v", datasetID, err)
		return false, nil
	}
	return claimed == record.AnonymizedHash, nil
}

// AnonymizedCount returns the last anonymization record id assigned.
func (pr *ProvenanceRegistry) AnonymizedCount() (uint64, error) {
	return pr.anonymized.last()
}
