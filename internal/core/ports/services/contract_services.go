package services

import (
	"context"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/SscSPs/property_ledger/internal/dto"
)

// ContractReaderSvc defines read operations for contracts
type ContractReaderSvc interface {
	GetContract(ctx context.Context, actor domain.Actor, contractID string) (*dto.ContractResponse, error)
}

// ContractWriterSvc defines the contract lifecycle
type ContractWriterSvc interface {
	// CreateContract inserts the contract and its schedules atomically.
	CreateContract(ctx context.Context, actor domain.Actor, req dto.CreateContractRequest) (*dto.ContractResponse, error)

	// RenewContract moves the end date forward and schedules the added months.
	RenewContract(ctx context.Context, actor domain.Actor, contractID string, renewal domain.ContractRenewal) (*dto.ContractResponse, error)

	// DeleteContract removes the contract together with its schedule rows.
	DeleteContract(ctx context.Context, actor domain.Actor, contractID string) (bool, error)
}

// ContractSvcFacade combines all contract-related service interfaces
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}
