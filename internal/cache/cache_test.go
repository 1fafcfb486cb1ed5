package cache

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBolt(t *testing.T) *Bolt {
	t.Helper()
	b, err := OpenBolt(filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBolt_GetMissing(t *testing.T) {
	b := openTestBolt(t)

	doc, err := b.Get(uuid.New(), "modernTemplateConfig")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestBolt_PutGet(t *testing.T) {
	b := openTestBolt(t)
	user := uuid.New()

	require.NoError(t, b.Put(user, "modernTemplateConfig", []byte(`{"fontScaleLevel":1}`)))
	require.NoError(t, b.Put(user, "modernTemplateConfig", []byte(`{"fontScaleLevel":2}`)))

	doc, err := b.Get(user, "modernTemplateConfig")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fontScaleLevel":2}`, string(doc))

	keys, err := b.Keys(user)
	require.NoError(t, err)
	assert.Equal(t, []string{"modernTemplateConfig"}, keys)
}

func TestBolt_UsersAreIsolated(t *testing.T) {
	b := openTestBolt(t)
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, b.Put(alice, "classicTemplateConfig", []byte(`{}`)))

	doc, err := b.Get(bob, "classicTemplateConfig")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	user := uuid.New()

	b, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, b.Put(user, "sidebarTemplateConfig", []byte(`{"sidebarColor":"#000000"}`)))
	require.NoError(t, b.Close())

	b, err = OpenBolt(path)
	require.NoError(t, err)
	defer b.Close()

	doc, err := b.Get(user, "sidebarTemplateConfig")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sidebarColor":"#000000"}`, string(doc))
}

func TestBolt_ClosedFails(t *testing.T) {
	b, err := OpenBolt(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, b.Close())

	assert.Error(t, b.Put(uuid.New(), "k", []byte(`{}`)))
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	user := uuid.New()
	doc := []byte(`{"a":1}`)

	require.NoError(t, m.Put(user, "k", doc))
	doc[2] = 'b'

	got, err := m.Get(user, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	missing, err := m.Get(uuid.New(), "k")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
