package constants

// CertificateStatus is the canonical status for consent certificates.
type CertificateStatus string

// Stable values (store these exact strings).
const (
	CertificateActive  CertificateStatus = "active"
	CertificateRevoked CertificateStatus = "revoked" // terminal
)

// ReceiptStatus is the status stamped on token debit receipts.
type ReceiptStatus string

const (
	ReceiptCompleted ReceiptStatus = "completed"
)

const (
	// DefaultMaxChunkTokens bounds a single chunk sent to the model.
	DefaultMaxChunkTokens = 3000

	// DefaultStartingTokens is the balance created on first ledger access.
	DefaultStartingTokens = 10
)
