package contract

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("datagov.ledger")

// Limits for free-text inputs.
const (
	maxIdentityLength    = 4096 // base64 X.509 identities are long
	maxNameLength        = 256
	maxDescriptionLength = 1024
	maxDetailsLength     = 4096
	hashSize             = 32
)

// actorInfo holds the transaction invoker as seen by the registries.
type actorInfo struct {
	fullID string
	mspID  string
}

// getCurrentActor resolves the transaction invoker. Only the full ID is
// authoritative; the MSP ID is informational and may be empty.
func getCurrentActor(ctx contractapi.TransactionContextInterface) (*actorInfo, error) {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		return nil, errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return nil, fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return nil, errors.New("client identity ID from context is empty")
	}
	mspID, err := clientIdentity.GetMSPID()
	if err != nil {
		logger.Warningf("Could not determine MSPID for caller '%s': %v", id, err)
		mspID = ""
	}
	return &actorInfo{fullID: id, mspID: mspID}, nil
}

// getLogicalTime returns the transaction timestamp in Unix seconds. Every
// endorser sees the same value for a given proposal.
func getLogicalTime(ctx contractapi.TransactionContextInterface) (uint64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	if ts == nil || ts.GetSeconds() < 0 {
		return 0, errors.New("transaction timestamp is unset or before the epoch")
	}
	return uint64(ts.GetSeconds()), nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func createCompositeKey(ctx contractapi.TransactionContextInterface, objectType string, attrs ...string) (string, error) {
	key, err := ctx.GetStub().CreateCompositeKey(objectType, attrs)
	if err != nil {
		return "", fmt.Errorf("failed to create %s composite key for %v: %w", objectType, attrs, err)
	}
	return key, nil
}

// readLedgerJSON unmarshals the value stored under key into out. It reports
// false when the key is absent.
func readLedgerJSON(ctx contractapi.TransactionContextInterface, key string, out interface{}) (bool, error) {
	raw, err := ctx.GetStub().GetState(key)
	if err != nil {
		return false, fmt.Errorf("ledger error reading key '%s': %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal value of key '%s': %w", key, err)
	}
	return true, nil
}

func writeLedgerJSON(ctx contractapi.TransactionContextInterface, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key '%s': %w", key, err)
	}
	if err := ctx.GetStub().PutState(key, raw); err != nil {
		return fmt.Errorf("failed to save key '%s': %w", key, err)
	}
	return nil
}

// readAllByObjectType walks every document stored under objectType. Entries
// that fail to decode are logged and skipped.
func readAllByObjectType[T any](ctx contractapi.TransactionContextInterface, objectType string) ([]T, error) {
	resultsIterator, err := ctx.GetStub().GetStateByPartialCompositeKey(objectType, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to get iterator for objectType '%s': %w", objectType, err)
	}
	defer resultsIterator.Close()

	items := []T{}
	for resultsIterator.HasNext() {
		queryResponse, iterErr := resultsIterator.Next()
		if iterErr != nil {
			logger.Warningf("Failed to get next %s from iterator: %v. Skipping.", objectType, iterErr)
			continue
		}
		var item T
		if err := json.Unmarshal(queryResponse.Value, &item); err != nil {
			logger.Warningf("Failed to unmarshal %s for key '%s': %v. Skipping.", objectType, queryResponse.Key, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// --- Validation Helper Functions ---

func validateRequiredString(registry, input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return newRegistryError(registry, KindInvalidArgument, "%s cannot be empty", field)
	}
	if len(input) > max {
		return newRegistryError(registry, KindInvalidArgument, "%s exceeds max length %d", field, max)
	}
	return nil
}

func validateOptionalString(registry, input, field string, max int) error {
	if len(input) > max {
		return newRegistryError(registry, KindInvalidArgument, "%s exceeds max length %d", field, max)
	}
	return nil
}

// parseHash normalizes a 32-byte hash given as hex (optionally 0x-prefixed,
// any case) to lowercase hex without prefix.
func parseHash(registry, input, field string) (string, error) {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return "", newRegistryError(registry, KindInvalidArgument, "%s is not valid hex: %v", field, err)
	}
	if len(raw) != hashSize {
		return "", newRegistryError(registry, KindInvalidArgument, "%s must be %d bytes, got %d", field, hashSize, len(raw))
	}
	return hex.EncodeToString(raw), nil
}

// emitRegistryEvent sends a chaincode event. Failures are logged only; the
// state change has already been written.
func emitRegistryEvent(ctx contractapi.TransactionContextInterface, eventName, registry string, actor *actorInfo, now uint64, additionalPayload map[string]interface{}) {
	if actor == nil {
		logger.Errorf("emitRegistryEvent: cannot emit event, actor is nil. Event: %s", eventName)
		return
	}
	payload := map[string]interface{}{
		"registry":    registry,
		"actorFullId": actor.fullID,
		"actorMspId":  actor.mspID,
		"timestamp":   now,
	}
	for k, v := range additionalPayload {
		payload[k] = v
	}
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("emitRegistryEvent: Failed to marshal event payload for event '%s': %v", eventName, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("emitRegistryEvent: Failed to set event '%s': %v", eventName, errSet)
	}
}
