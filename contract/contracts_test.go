package contract

import (
	"errors"
	"testing"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractNames(t *testing.T) {
	assert.Equal(t, "identity", NewIdentityContract().GetName())
	assert.Equal(t, "ownership", NewOwnershipContract().GetName())
	assert.Equal(t, "usage", NewUsageContract().GetName())
	assert.Equal(t, "anonymization", NewAnonymizationContract().GetName())
}

func TestAccessGrantScenario(t *testing.T) {
	l := newTestLedger(t)
	c := NewOwnershipContract()
	hasAccess := func() bool {
		ok, err := run(l, accessorID, func(ctx contractapi.TransactionContextInterface) (bool, error) {
			return c.HasAccess(ctx, 1, accessorID)
		})
		require.NoError(t, err)
		return ok
	}

	l.setTime(123)
	require.NoError(t, l.invoke(ownerID, func(ctx contractapi.TransactionContextInterface) error {
		return c.RegisterDataset(ctx, 1)
	}))
	require.NoError(t, l.invoke(ownerID, func(ctx contractapi.TransactionContextInterface) error {
		return c.GrantAccess(ctx, 1, accessorID, 2, 1000)
	}))
	assert.True(t, hasAccess())

	require.NoError(t, l.invoke(ownerID, func(ctx contractapi.TransactionContextInterface) error {
		return c.RevokeAccess(ctx, 1, accessorID)
	}))
	assert.False(t, hasAccess())

	l.setTime(40)
	require.NoError(t, l.invoke(ownerID, func(ctx contractapi.TransactionContextInterface) error {
		return c.GrantAccess(ctx, 1, accessorID, 3, 50)
	}))
	assert.True(t, hasAccess())

	l.setTime(51)
	assert.False(t, hasAccess(), "grant expired at 50")

	grant, err := run(l, accessorID, func(ctx contractapi.TransactionContextInterface) (*model.AccessGrant, error) {
		return c.GetAccessGrant(ctx, 1, accessorID)
	})
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, uint32(3), grant.AccessLevel)
	assert.True(t, grant.Active)
}

func TestUsageScenario(t *testing.T) {
	l := newTestLedger(t)
	c := NewUsageContract()

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	}))
	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.RegisterUsageType(ctx, 1, "Research", "Observational research")
	}))

	id, err := run(l, accessorID, func(ctx contractapi.TransactionContextInterface) (uint64, error) {
		return c.RecordUsage(ctx, 1, 1, "notes")
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	rec, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (*model.UsageRecord, error) {
		return c.GetDatasetUsage(ctx, 1, 1)
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "notes", rec.Details)

	rec, err = run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (*model.UsageRecord, error) {
		return c.GetDatasetUsage(ctx, 2, 1)
	})
	require.NoError(t, err)
	assert.Nil(t, rec)

	count, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (uint64, error) {
		return c.GetUsageCount(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestAnonymizationScenario(t *testing.T) {
	l := newTestLedger(t)
	c := NewAnonymizationContract()

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	}))
	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.RegisterMethod(ctx, 3, "Differential privacy", "epsilon=1")
	}))

	id, err := run(l, ownerID, func(ctx contractapi.TransactionContextInterface) (uint64, error) {
		return c.RegisterAnonymizedDataset(ctx, hashOf(0x01), hashOf(0x02), 3)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	ok, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (bool, error) {
		return c.VerifyAnonymization(ctx, 1, hashOf(0x02))
	})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (bool, error) {
		return c.VerifyAnonymization(ctx, 9, hashOf(0x02))
	})
	assert.True(t, errors.Is(err, Sentinel(RegistryAnonymization, KindNotFound)))

	methods, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) ([]model.Category, error) {
		return c.GetAllMethods(ctx)
	})
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "Differential privacy", methods[0].Name)
}

func TestAdminsAreIndependentAcrossContracts(t *testing.T) {
	l := newTestLedger(t)
	identity := NewIdentityContract()
	usage := NewUsageContract()

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return identity.InitRegistry(ctx)
	}))
	require.NoError(t, l.invoke(ownerID, func(ctx contractapi.TransactionContextInterface) error {
		return usage.InitRegistry(ctx)
	}))

	idAdmin, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (string, error) {
		return identity.GetAdmin(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, adminID, idAdmin)

	usageAdmin, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (string, error) {
		return usage.GetAdmin(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, usageAdmin)

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return identity.TransferAdmin(ctx, strangerID)
	}))
	usageAdmin, err = run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (string, error) {
		return usage.GetAdmin(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, ownerID, usageAdmin)

	ownershipAdmin, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (string, error) {
		return NewOwnershipContract().GetAdmin(ctx)
	})
	require.NoError(t, err)
	assert.Empty(t, ownershipAdmin)

	err = l.invoke(strangerID, func(ctx contractapi.TransactionContextInterface) error {
		return usage.RegisterUsageType(ctx, 1, "Research", "")
	})
	assert.True(t, errors.Is(err, Sentinel(RegistryUsage, KindNotAuthorized)))
	assert.Equal(t, uint32(100), CodeOf(err))
}

func TestInstitutionLifecycleThroughContract(t *testing.T) {
	l := newTestLedger(t)
	c := NewIdentityContract()

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	}))
	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.VerifyInstitution(ctx, institutionID, "University Clinic", 3)
	}))

	verified, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (bool, error) {
		return c.IsVerified(ctx, institutionID)
	})
	require.NoError(t, err)
	assert.True(t, verified)

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.RevokeInstitution(ctx, institutionID)
	}))

	inst, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (*model.Institution, error) {
		return c.GetInstitution(ctx, institutionID)
	})
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.False(t, inst.Active)
	assert.Equal(t, uint8(3), inst.VerificationLevel)

	all, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) ([]model.Institution, error) {
		return c.GetAllInstitutions(ctx)
	})
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, l.events, "RegistryInitialized")
}

func TestInitRegistryBootstrapMSP(t *testing.T) {
	l := newTestLedger(t)
	l.setMSP(strangerID, "Org3MSP")
	c := NewOwnershipContract(WithBootstrapMSPID(testMSPID))

	err := l.invoke(strangerID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	})
	assert.True(t, errors.Is(err, Sentinel(RegistryOwnership, KindNotAuthorized)))

	admin, err := run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (string, error) {
		return c.GetAdmin(ctx)
	})
	require.NoError(t, err)
	assert.Empty(t, admin, "rejected caller must not become admin")

	require.NoError(t, l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	}))
	admin, err = run(l, strangerID, func(ctx contractapi.TransactionContextInterface) (string, error) {
		return c.GetAdmin(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, adminID, admin)
}

func TestInitRegistryOpenWithoutBootstrapMSP(t *testing.T) {
	l := newTestLedger(t)
	l.setMSP(strangerID, "Org3MSP")
	c := NewUsageContract(WithBootstrapMSPID(""))

	require.NoError(t, l.invoke(strangerID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	}))
	err := l.invoke(adminID, func(ctx contractapi.TransactionContextInterface) error {
		return c.InitRegistry(ctx)
	})
	assert.True(t, errors.Is(err, Sentinel(RegistryUsage, KindAlreadyInitialized)))
}
