package services

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Obligation ObligationService
	Payment    PaymentService
	Ledger     LedgerService
	Reporting  ReportingService
	Enrollment EnrollmentService
	User       UserService
}
