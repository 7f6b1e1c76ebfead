package domain

// Category is a product category from the GST rate table.
type Category string

const (
	CategoryElectronics           Category = "Electronics"
	CategoryFurniture             Category = "Furniture"
	CategoryFoodItems             Category = "Food Items"
	CategoryClothing              Category = "Clothing"
	CategoryBooks                 Category = "Books"
	CategoryPharmaceuticals       Category = "Pharmaceuticals"
	CategoryAutomobiles           Category = "Automobiles"
	CategoryConstructionMaterials Category = "Construction Materials"
	CategorySoftwareServices      Category = "Software Services"
	CategoryOthers                Category = "Others"
)

// InvoiceStatus represents the processing lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusProcessed InvoiceStatus = "processed"
	InvoiceStatusError     InvoiceStatus = "error"
)

// ReconciliationStatus represents whether an invoice was matched against filed returns.
type ReconciliationStatus string

const (
	ReconciliationStatusPending    ReconciliationStatus = "pending"
	ReconciliationStatusReconciled ReconciliationStatus = "reconciled"
)

// VerificationStatus is the outcome of an invoice verification request.
type VerificationStatus string

const (
	VerificationStatusSuccess VerificationStatus = "success"
	VerificationStatusError   VerificationStatus = "error"
)
