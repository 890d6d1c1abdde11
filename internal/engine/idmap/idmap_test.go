package idmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/engine/idmap"
)

func TestMap_RemapIsIdempotent(t *testing.T) {
	m := idmap.New()
	f1 := domain.Ref(domain.KindFile, 42)

	first := m.Remap(f1)
	second := m.Remap(f1)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.Len())
}

func TestMap_SharedSequenceAcrossKinds(t *testing.T) {
	m := idmap.New()

	// Same source identifier under different kinds must not collide.
	file := m.Remap(domain.Ref(domain.KindFile, 7))
	artifact := m.Remap(domain.Ref(domain.KindArtifact, 7))
	tag := m.Remap(domain.Ref(domain.KindTag, 7))

	assert.Equal(t, domain.DestinationObjectID(1), file)
	assert.Equal(t, domain.DestinationObjectID(2), artifact)
	assert.Equal(t, domain.DestinationObjectID(3), tag)
}

func TestMap_Reverse(t *testing.T) {
	m := idmap.New()
	ref := domain.Ref(domain.KindDataSource, 900)
	id := m.Remap(ref)

	got, ok := m.Source(id)
	require.True(t, ok)
	assert.Equal(t, ref, got)

	_, ok = m.Source(id + 1)
	assert.False(t, ok)
}

func TestMap_ForgetDoesNotReuse(t *testing.T) {
	m := idmap.New()
	a := domain.Ref(domain.KindFile, 1)
	b := domain.Ref(domain.KindFile, 2)

	idA := m.Remap(a)
	m.Forget(a)

	_, ok := m.Lookup(a)
	assert.False(t, ok)
	_, ok = m.Source(idA)
	assert.False(t, ok)

	idB := m.Remap(b)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, []domain.SourceObjectRef{b}, m.Refs())
}
