package minter

import (
	"github.com/feral-file/ff-minter/internal/domain"
)

// MetadataResolver maps token ids to URIs, hiding them behind a placeholder until reveal
type MetadataResolver struct {
	baseURI       string
	hiddenBaseURI string
	revealed      bool
}

// NewMetadataResolver creates a resolver
func NewMetadataResolver(baseURI, hiddenBaseURI string, revealed bool) *MetadataResolver {
	return &MetadataResolver{
		baseURI:       baseURI,
		hiddenBaseURI: hiddenBaseURI,
		revealed:      revealed,
	}
}

// TokenURI returns the URI of id. The caller checks the id exists.
func (m *MetadataResolver) TokenURI(id domain.TokenID) string {
	if !m.revealed {
		return m.hiddenBaseURI + id.String()
	}
	return m.baseURI + id.String()
}

func (m *MetadataResolver) Revealed() bool {
	return m.revealed
}

func (m *MetadataResolver) SetRevealed(revealed bool) {
	m.revealed = revealed
}

func (m *MetadataResolver) SetBaseURI(uri string) {
	m.baseURI = uri
}

func (m *MetadataResolver) SetHiddenBaseURI(uri string) {
	m.hiddenBaseURI = uri
}
