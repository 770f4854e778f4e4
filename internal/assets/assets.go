package assets

// Names of the built-in bill assets.
const (
	BillTemplate = "bill"
	BillStyle    = "bill"
)
