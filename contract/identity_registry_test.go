package contract

import (
	"errors"
	"strings"
	"testing"

	"github.com/ayelagbeoluwatosin81/Decentralized-Medical-Research-Data-Sharing/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/suite"
)

const institutionID = "x509::CN=research,OU=client::CN=ca.hospital"

type IdentityRegistrySuite struct {
	suite.Suite
	ledger *testLedger
}

func TestIdentityRegistrySuite(t *testing.T) {
	suite.Run(t, new(IdentityRegistrySuite))
}

func (s *IdentityRegistrySuite) SetupTest() {
	s.ledger = newTestLedger(s.T())
	s.Require().NoError(s.ledger.initRegistry(RegistryIdentity, adminID))
}

func (s *IdentityRegistrySuite) verify(caller, identity, name string, level uint8) error {
	return s.ledger.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
		return NewIdentityRegistry(ctx).Verify(identity, name, level)
	})
}

func (s *IdentityRegistrySuite) revoke(caller, identity string) error {
	return s.ledger.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
		return NewIdentityRegistry(ctx).Revoke(identity)
	})
}

func (s *IdentityRegistrySuite) details(identity string) *model.Institution {
	inst, err := run(s.ledger, strangerID, func(ctx contractapi.TransactionContextInterface) (*model.Institution, error) {
		return NewIdentityRegistry(ctx).GetDetails(identity)
	})
	s.Require().NoError(err)
	return inst
}

func (s *IdentityRegistrySuite) isVerified(identity string) (bool, error) {
	return run(s.ledger, strangerID, func(ctx contractapi.TransactionContextInterface) (bool, error) {
		return NewIdentityRegistry(ctx).IsVerified(identity)
	})
}

func (s *IdentityRegistrySuite) TestVerify() {
	s.Run("admin verifies an institution", func() {
		s.ledger.setTime(500)
		s.Require().NoError(s.verify(adminID, institutionID, "General Hospital", 2))

		inst := s.details(institutionID)
		s.Require().NotNil(inst)
		s.Equal(institutionObjectType, inst.ObjectType)
		s.Equal("General Hospital", inst.Name)
		s.Equal(uint8(2), inst.VerificationLevel)
		s.Equal(uint64(500), inst.VerifiedAt)
		s.True(inst.Active)
		s.Equal("InstitutionVerified", s.ledger.lastEvent())

		verified, err := s.isVerified(institutionID)
		s.Require().NoError(err)
		s.True(verified)
	})

	s.Run("second verify fails and leaves the record unchanged", func() {
		before := s.details(institutionID)
		s.ledger.setTime(900)
		err := s.verify(adminID, institutionID, "Renamed", 5)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindAlreadyVerified)))
		s.Equal(before, s.details(institutionID))
	})

	s.Run("non-admin is rejected before input validation", func() {
		err := s.verify(strangerID, "", "", 1)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindNotAuthorized)))
		s.Nil(s.details(""))
	})

	s.Run("empty name is invalid", func() {
		err := s.verify(adminID, "x509::CN=other", "  ", 1)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindInvalidArgument)))
	})

	s.Run("overlong identity is invalid", func() {
		err := s.verify(adminID, strings.Repeat("a", maxIdentityLength+1), "Name", 1)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindInvalidArgument)))
	})
}

func (s *IdentityRegistrySuite) TestRevoke() {
	s.Require().NoError(s.verify(adminID, institutionID, "General Hospital", 1))

	s.Run("non-admin cannot revoke", func() {
		err := s.revoke(strangerID, institutionID)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindNotAuthorized)))
	})

	s.Run("unknown identity is not found", func() {
		err := s.revoke(adminID, "x509::CN=nobody")
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindNotFound)))
	})

	s.Run("revoke keeps the record but clears active", func() {
		s.Require().NoError(s.revoke(adminID, institutionID))
		s.Equal("InstitutionRevoked", s.ledger.lastEvent())

		inst := s.details(institutionID)
		s.Require().NotNil(inst)
		s.False(inst.Active)
		s.Equal("General Hospital", inst.Name)

		verified, err := s.isVerified(institutionID)
		s.Require().NoError(err)
		s.False(verified)
	})

	s.Run("a revoked identity cannot be verified again", func() {
		err := s.verify(adminID, institutionID, "General Hospital", 1)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindAlreadyVerified)))
	})

	s.Run("revoking twice is allowed", func() {
		s.NoError(s.revoke(adminID, institutionID))
	})
}

func (s *IdentityRegistrySuite) TestIsVerifiedUnknown() {
	_, err := s.isVerified("x509::CN=ghost")
	s.True(errors.Is(err, Sentinel(RegistryIdentity, KindNotFound)))
}

func (s *IdentityRegistrySuite) TestGetAll() {
	s.Require().NoError(s.verify(adminID, "x509::CN=a", "A", 1))
	s.Require().NoError(s.verify(adminID, "x509::CN=b", "B", 2))
	s.Require().NoError(s.revoke(adminID, "x509::CN=b"))

	all, err := run(s.ledger, strangerID, func(ctx contractapi.TransactionContextInterface) ([]model.Institution, error) {
		return NewIdentityRegistry(ctx).GetAll()
	})
	s.Require().NoError(err)
	s.Len(all, 2)

	names := map[string]bool{}
	for _, inst := range all {
		names[inst.Name] = inst.Active
	}
	s.Equal(map[string]bool{"A": true, "B": false}, names)
}

func (s *IdentityRegistrySuite) TestAdminTransfer() {
	transfer := func(caller, newAdmin string) error {
		return s.ledger.invoke(caller, func(ctx contractapi.TransactionContextInterface) error {
			return NewIdentityRegistry(ctx).Admin().Transfer(newAdmin)
		})
	}

	s.Run("only the admin may transfer", func() {
		err := transfer(strangerID, strangerID)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindNotAuthorized)))
	})

	s.Run("empty new admin is invalid", func() {
		err := transfer(adminID, "")
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindInvalidArgument)))
	})

	s.Run("transfer hands over admin rights", func() {
		s.Require().NoError(transfer(adminID, ownerID))
		s.Equal("AdminTransferred", s.ledger.lastEvent())

		err := s.verify(adminID, institutionID, "Hospital", 1)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindNotAuthorized)))
		s.NoError(s.verify(ownerID, institutionID, "Hospital", 1))
	})

	s.Run("initialize fails once an admin exists", func() {
		err := s.ledger.initRegistry(RegistryIdentity, strangerID)
		s.True(errors.Is(err, Sentinel(RegistryIdentity, KindAlreadyInitialized)))
	})
}
