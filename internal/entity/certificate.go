package entity

import (
	"time"

	"github.com/Charan-r11/Hack-The-Future/constants"
)

// ConsentCertificate attests that the consent summary and Q&A steps were both
// completed for a document. Once revoked, the status is terminal.
type ConsentCertificate struct {
	CertificateID  string                      `json:"certificate_id"`
	OrgID          string                      `json:"org_id"`
	UserID         string                      `json:"user_id"`
	DocumentHash   string                      `json:"document_hash"`
	Timestamp      time.Time                   `json:"timestamp"`
	Status         constants.CertificateStatus `json:"status"`
	VerifiableHash string                      `json:"verifiable_hash"`
}
