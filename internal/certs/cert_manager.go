package certs

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

var ErrExpired = errors.New("certificate expired")

// CertManager holds the certificate pair the server listens with.
type CertManager struct {
	certFile string
	keyFile  string
}

func NewCertManager(certFile, keyFile string) *CertManager {
	return &CertManager{certFile: certFile, keyFile: keyFile}
}

// Leaf parses the first certificate of the chain file.
func (cm *CertManager) Leaf() (*x509.Certificate, error) {
	data, err := os.ReadFile(cm.certFile)
	if err != nil {
		return nil, err
	}
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return nil, fmt.Errorf("no certificate PEM block in %s", cm.certFile)
		}
		if block.Type == "CERTIFICATE" {
			return x509.ParseCertificate(block.Bytes)
		}
	}
}

// IsExpired checks if a certificate is expired at now.
func (cm *CertManager) IsExpired(cert *x509.Certificate, now time.Time) bool {
	return cert.NotAfter.Before(now)
}

// TLSConfig loads the key pair and refuses an expired leaf.
func (cm *CertManager) TLSConfig(now time.Time) (*tls.Config, error) {
	pair, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}
	leaf, err := cm.Leaf()
	if err != nil {
		return nil, err
	}
	if cm.IsExpired(leaf, now) {
		return nil, fmt.Errorf("%w: %s not after %s", ErrExpired, cm.certFile, leaf.NotAfter.Format(time.RFC3339))
	}
	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
