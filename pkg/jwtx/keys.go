package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// LoadOrGenerateKey reads an Ed25519 private key in PKCS8 PEM form from
// keyFile, generating and persisting a fresh one if the file does not exist.
// Restarting the service keeps existing sessions valid as long as the key
// file survives.
func LoadOrGenerateKey(keyFile string) ([]byte, error) {
	keyFile = filepath.Clean(keyFile)

	if pemBytes, err := os.ReadFile(keyFile); err == nil {
		return pemBytes, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("jwtx: read key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(keyFile), 0750); err != nil {
		return nil, fmt.Errorf("jwtx: create key dir: %w", err)
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(keyFile, pemBytes, 0600); err != nil {
		return nil, fmt.Errorf("jwtx: write key file: %w", err)
	}

	return pemBytes, nil
}
