package ports

import "go.trai.ch/portable/internal/core/domain"

// Hasher computes short, stable digests of build inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// SelectionDigest identifies a normalized selection.
	SelectionDigest(sel domain.Selection) string
}
