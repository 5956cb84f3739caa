package routes

const (
	Health = "/health"

	AuthRegister = "/api/v1/auth/register"
	AuthLogin    = "/api/v1/auth/login"
	AuthProfile  = "/api/v1/auth/profile"

	Properties    = "/api/v1/properties"
	PropertyByID  = "/api/v1/properties/{id}"
	PropertyRooms = "/api/v1/properties/{id}/rooms"

	Rooms           = "/api/v1/rooms"
	RoomByID        = "/api/v1/rooms/{id}"
	RoomContracts   = "/api/v1/rooms/{id}/contracts"
	RoomMaintenance = "/api/v1/rooms/{id}/maintenance"

	Renters         = "/api/v1/renters"
	RenterByID      = "/api/v1/renters/{id}"
	RenterPayments  = "/api/v1/renters/{id}/payments"
	RenterDocuments = "/api/v1/renters/{id}/documents"

	Contracts         = "/api/v1/contracts"
	ContractByID      = "/api/v1/contracts/{id}"
	ContractTerminate = "/api/v1/contracts/{id}/terminate"

	Payments        = "/api/v1/payments"
	PaymentByID     = "/api/v1/payments/{id}"
	PaymentMarkPaid = "/api/v1/payments/{id}/pay"

	Maintenance     = "/api/v1/maintenance"
	MaintenanceByID = "/api/v1/maintenance/{id}"

	Documents    = "/api/v1/documents"
	DocumentByID = "/api/v1/documents/{id}"
)
