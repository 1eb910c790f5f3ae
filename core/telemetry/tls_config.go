package telemetry

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrCACertsRejected = errors.New("failed to add CA certificates to CA cert pool")

// tlsConfig builds a client TLS configuration trusting the base64 encoded PEM bundle.
func tlsConfig(caCertsBase64 string) (*tls.Config, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(caCertsBase64)
	if err != nil {
		return nil, fmt.Errorf("decoding collector CA certificates: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, ErrCACertsRejected
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
