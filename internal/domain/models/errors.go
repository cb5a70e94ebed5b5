package models

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks across layers.
var (
	ErrNetwork           = errors.New("network error")
	ErrMalformedData     = errors.New("malformed data")
	ErrMissingCredential = errors.New("missing credential")
	ErrUnsupported       = errors.New("operation not supported by source")
	ErrCache             = errors.New("cache error")
	ErrEnrichment        = errors.New("enrichment error")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrUnexpected        = errors.New("unexpected error")
)

// NetworkError carries the upstream status and a body excerpt.
type NetworkError struct {
	Status int
	Body   string
}

func (e *NetworkError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

func (e *NetworkError) Unwrap() error {
	if e.Status == 429 {
		return ErrRateLimited
	}
	return ErrNetwork
}

// NewNetworkError builds a NetworkError, truncating the body excerpt.
func NewNetworkError(status int, body []byte) *NetworkError {
	const maxExcerpt = 200
	b := string(body)
	if len(b) > maxExcerpt {
		b = b[:maxExcerpt]
	}
	return &NetworkError{Status: status, Body: b}
}

// MalformedDataError reports a structural decode failure.
type MalformedDataError struct {
	Reason string
	Err    error
}

func (e *MalformedDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed data: %s", e.Reason)
}

func (e *MalformedDataError) Unwrap() error { return ErrMalformedData }

// MissingCredentialError names the upstream whose credential is absent.
type MissingCredentialError struct {
	Upstream string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential for %s", e.Upstream)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// UnsupportedError distinguishes "this source cannot answer" from "no data".
type UnsupportedError struct {
	Source string
	Op     string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not supported by source %s", e.Op, e.Source)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// CacheError wraps a failure in the cache tiers.
type CacheError struct {
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache failure for key %q: %v", e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return ErrCache }

// EnrichmentError reports a failed summarizer call. Never fatal for a scan.
type EnrichmentError struct {
	Stage string
	Err   error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrichment %s failed: %v", e.Stage, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return ErrEnrichment }
