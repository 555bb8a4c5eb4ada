package services

// ServiceContainer holds all the application services.
type ServiceContainer struct {
	Scope       ScopeSvcFacade
	Schedule    ScheduleSvcFacade
	Contract    ContractSvcFacade
	Transaction TransactionSvcFacade
	Invoice     InvoiceSvcFacade
	Payment     PaymentSvcFacade
}
