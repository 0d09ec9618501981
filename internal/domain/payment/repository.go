package payment

// Repository is the transaction store. Save overwrites an existing id.
type Repository interface {
	Save(TransactionRecord) error
	FindByID(string) (TransactionRecord, error)
}
