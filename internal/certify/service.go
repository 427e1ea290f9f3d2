package certify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Charan-r11/Hack-The-Future/constants"
	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
	"github.com/Charan-r11/Hack-The-Future/internal/kvstore"
)

const certKeyPrefix = "certificate/"

// HashRegistrar anchors certificate hashes on an external verification
// network. Optional; without one the locally computed hash stands.
type HashRegistrar interface {
	RegisterHash(ctx context.Context, requestID, hash string) (string, error)
}

// IssueRequest carries the proof of completed analysis steps a certificate
// attests to.
type IssueRequest struct {
	OrgID            string
	UserID           string
	DocumentText     string
	SummaryCompleted bool
	QACompleted      bool
}

// Service issues and verifies consent certificates.
type Service struct {
	store     kvstore.Store
	registrar HashRegistrar
	logger    *slog.Logger
}

func NewService(store kvstore.Store, registrar HashRegistrar, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, registrar: registrar, logger: logger}
}

// Issue mints a certificate for a fully analyzed document. Both the summary
// and the Q&A step must have completed.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (entity.ConsentCertificate, error) {
	if req.UserID == "" {
		return entity.ConsentCertificate{}, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if req.DocumentText == "" {
		return entity.ConsentCertificate{}, fmt.Errorf("%w: document text is required", common.ErrValidation)
	}
	if !req.SummaryCompleted || !req.QACompleted {
		return entity.ConsentCertificate{}, fmt.Errorf(
			"%w: certificate requires completed summary and q&a steps", common.ErrValidation)
	}

	certID := uuid.New().String()
	docHash := HashDocument(req.DocumentText)
	verifiableHash := VerifiableHash(certID, docHash, req.UserID)

	if s.registrar != nil {
		// Best-effort anchoring; issuance does not depend on the network and
		// verification always recomputes against the local hash.
		attested, err := s.registrar.RegisterHash(ctx, certID, verifiableHash)
		if err != nil {
			s.logger.Warn("certify.issue.register_failed", "certificate_id", certID, "error", err)
		} else {
			s.logger.Info("certify.issue.anchored", "certificate_id", certID, "attested_hash", attested)
		}
	}

	cert := entity.ConsentCertificate{
		CertificateID:  certID,
		OrgID:          req.OrgID,
		UserID:         req.UserID,
		DocumentHash:   docHash,
		Timestamp:      time.Now().UTC(),
		Status:         constants.CertificateActive,
		VerifiableHash: verifiableHash,
	}
	if err := s.save(ctx, cert); err != nil {
		return entity.ConsentCertificate{}, err
	}
	s.logger.Info("certify.issue.ok",
		"certificate_id", certID, "user_id", req.UserID, "org_id", req.OrgID)
	return cert, nil
}

// Get loads a certificate by id.
func (s *Service) Get(ctx context.Context, certificateID string) (entity.ConsentCertificate, error) {
	raw, err := s.store.Get(ctx, certKeyPrefix+certificateID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return entity.ConsentCertificate{}, fmt.Errorf("%w: certificate %s", common.ErrNotFound, certificateID)
	}
	if err != nil {
		return entity.ConsentCertificate{}, fmt.Errorf("load certificate: %w", err)
	}
	var cert entity.ConsentCertificate
	if err := json.Unmarshal(raw, &cert); err != nil {
		return entity.ConsentCertificate{}, fmt.Errorf("decode certificate: %w", err)
	}
	return cert, nil
}

// Revoke marks a certificate revoked. The transition is terminal; revoking an
// already revoked certificate is a no-op.
func (s *Service) Revoke(ctx context.Context, certificateID string) (entity.ConsentCertificate, error) {
	cert, err := s.Get(ctx, certificateID)
	if err != nil {
		return entity.ConsentCertificate{}, err
	}
	if cert.Status == constants.CertificateRevoked {
		return cert, nil
	}
	cert.Status = constants.CertificateRevoked
	if err := s.save(ctx, cert); err != nil {
		return entity.ConsentCertificate{}, err
	}
	s.logger.Info("certify.revoke.ok", "certificate_id", certificateID)
	return cert, nil
}

// Verify recomputes the verifiable hash from the stored certificate fields
// and checks it against the stored value. Revoked certificates never verify.
func (s *Service) Verify(ctx context.Context, certificateID string) (bool, error) {
	cert, err := s.Get(ctx, certificateID)
	if err != nil {
		return false, err
	}
	if cert.Status == constants.CertificateRevoked {
		return false, nil
	}
	expected := VerifiableHash(cert.CertificateID, cert.DocumentHash, cert.UserID)
	return cert.VerifiableHash == expected, nil
}

func (s *Service) save(ctx context.Context, cert entity.ConsentCertificate) error {
	raw, err := json.Marshal(cert)
	if err != nil {
		return fmt.Errorf("encode certificate: %w", err)
	}
	if err := s.store.Put(ctx, certKeyPrefix+cert.CertificateID, raw); err != nil {
		return fmt.Errorf("save certificate: %w", err)
	}
	return nil
}

// HashDocument fingerprints raw document text.
func HashDocument(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// VerifiableHash binds a certificate to its document and user.
func VerifiableHash(certificateID, documentHash, userID string) string {
	sum := sha256.Sum256([]byte(certificateID + ":" + documentHash + ":" + userID))
	return hex.EncodeToString(sum[:])
}
