package services_test

import (
	"testing"

	"github.com/SscSPs/property_ledger/internal/apperrors"
	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/core/services"
	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/platform/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ScopeServiceTestSuite struct {
	ledgerSuite
}

func TestScopeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScopeServiceTestSuite))
}

func (s *ScopeServiceTestSuite) TestResolveActor() {
	actor, err := s.svc.Scope.ResolveActor(s.ctx, "owner-1")
	s.Require().NoError(err)
	s.Equal(domain.RoleOwner, actor.Role)

	_, err = s.svc.Scope.ResolveActor(s.ctx, "ghost")
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ScopeServiceTestSuite) TestComputeAccessScope() {
	scope, err := s.svc.Scope.ComputeAccessScope(s.ctx, s.admin)
	s.Require().NoError(err)
	s.True(scope.Unrestricted)
	s.Zero(s.store.callCount("FindAssignedBuildingIDs"))

	scope, err = s.svc.Scope.ComputeAccessScope(s.ctx, s.owner)
	s.Require().NoError(err)
	s.False(scope.Unrestricted)
	s.ElementsMatch([]string{"b-1", "b-2"}, scope.BuildingIDs)
	s.Equal("owner-1", scope.CreatedBy)

	_, err = s.svc.Scope.ComputeAccessScope(s.ctx, s.outsider)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ScopeServiceTestSuite) TestComputeAccessScope_ContractRowsStayInsideAssignedBuildings() {
	for _, c := range []domain.Contract{
		{ContractID: "c-own", TenantID: "t-1", ApartmentID: "a-1", OwnerID: ptr("owner-1")},
		{ContractID: "c-foreign", TenantID: "t-3", ApartmentID: "a-3", OwnerID: ptr("owner-1")},
	} {
		s.Require().NoError(s.store.SaveContract(s.ctx, nil, c))
	}
	for _, t := range []struct{ id, tenant, contract string }{
		{"txn-own", "t-1", "c-own"},
		{"txn-foreign", "t-3", "c-foreign"},
	} {
		s.Require().NoError(s.store.SaveTransaction(s.ctx, nil, domain.FinancialTransaction{
			TransactionID: t.id, TenantID: t.tenant, ContractID: ptr(t.contract), ReferenceNumber: t.id,
		}))
	}

	scope, err := s.svc.Scope.ComputeAccessScope(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Equal([]string{"txn-own"}, scope.RowIDs)
}

func (s *ScopeServiceTestSuite) TestAuthorizeBuilding() {
	s.NoError(s.svc.Scope.AuthorizeBuilding(s.ctx, s.owner, "b-2"))
	s.ErrorIs(s.svc.Scope.AuthorizeBuilding(s.ctx, s.owner, "b-3"), apperrors.ErrForbidden)
	s.ErrorIs(s.svc.Scope.AuthorizeBuilding(s.ctx, s.owner, ""), apperrors.ErrForbidden)
	s.NoError(s.svc.Scope.AuthorizeBuilding(s.ctx, s.admin, "b-3"))
}

func TestNewServiceContainer(t *testing.T) {
	cfg := &config.Config{RentDueDay: 5, DefaultCurrency: "EUR", DefaultPaymentMethod: "Bank Transfer"}

	container := services.NewServiceContainer(cfg, newMemStore().provider(), retry.Policy{MaxAttempts: 1})

	require.NotNil(t, container)
	assert.NotNil(t, container.Scope)
	assert.NotNil(t, container.Schedule)
	assert.NotNil(t, container.Contract)
	assert.NotNil(t, container.Transaction)
	assert.NotNil(t, container.Invoice)
	assert.NotNil(t, container.Payment)
}
