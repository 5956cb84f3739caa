package constants

import "time"

const (
	AppName          = "property-management-system"
	OrganizationName = "Property Management System"
)

// Token issuance
const (
	DefaultTokenExpiry   = 24 * time.Hour
	TestShortTokenExpiry = 2 * time.Second
)

// Sweep scheduling and timeouts
const (
	ContractExpiryCronSpec   = "0 1 * * *" // 01:00 UTC daily
	OverduePaymentCronSpec   = "0 2 * * *" // 02:00 UTC daily
	ShortSweepCronSpec       = "*/5 * * * *"
	ContractExpiryJobTimeout = 5 * time.Minute
	OverduePaymentJobTimeout = 5 * time.Minute
)

// CORS
const (
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:3000"
)
