package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/cache"
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRemote struct {
	mu     sync.Mutex
	delay  time.Duration
	docs   map[string][]byte
	writes [][]byte
	getErr error
	putErr error
}

func newRecordingRemote() *recordingRemote {
	return &recordingRemote{docs: make(map[string][]byte)}
}

func (r *recordingRemote) GetTemplateConfig(_ context.Context, userID uuid.UUID, variant string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.docs[userID.String()+"/"+variant], nil
}

func (r *recordingRemote) PutTemplateConfig(_ context.Context, userID uuid.UUID, variant string, doc []byte) error {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.putErr != nil {
		return r.putErr
	}
	r.docs[userID.String()+"/"+variant] = doc
	r.writes = append(r.writes, doc)
	return nil
}

func (r *recordingRemote) lastWrite() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return nil
	}
	return r.writes[len(r.writes)-1]
}

// blockingRemote holds every write until release is closed.
type blockingRemote struct {
	started chan []byte
	release chan struct{}

	mu     sync.Mutex
	writes [][]byte
}

func newBlockingRemote() *blockingRemote {
	return &blockingRemote{started: make(chan []byte, 16), release: make(chan struct{})}
}

func (r *blockingRemote) GetTemplateConfig(context.Context, uuid.UUID, string) ([]byte, error) {
	return nil, nil
}

func (r *blockingRemote) PutTemplateConfig(ctx context.Context, _ uuid.UUID, _ string, doc []byte) error {
	r.started <- doc
	select {
	case <-r.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, doc)
	return nil
}

func (r *blockingRemote) written() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.writes...)
}

type brokenCache struct{}

func (brokenCache) Get(uuid.UUID, string) ([]byte, error) { return nil, errors.New("disk gone") }
func (brokenCache) Put(uuid.UUID, string, []byte) error   { return errors.New("disk gone") }

func cachedConfig(t *testing.T, local *cache.Memory, userID uuid.UUID, v registry.Variant) types.TemplateConfig {
	t.Helper()
	key, err := registry.CacheKey(v)
	require.NoError(t, err)
	doc, err := local.Get(userID, key)
	require.NoError(t, err)
	require.NotNil(t, doc)
	var cfg types.TemplateConfig
	require.NoError(t, json.Unmarshal(doc, &cfg))
	return cfg
}

// assertSameDocument compares configurations by their persisted form, where
// empty maps and nil maps are indistinguishable.
func assertSameDocument(t *testing.T, want, got types.TemplateConfig) {
	t.Helper()
	wantDoc, err := json.Marshal(want)
	require.NoError(t, err)
	gotDoc, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantDoc), string(gotDoc))
}

func TestLoad_Defaults(t *testing.T) {
	s := New(uuid.New(), cache.NewMemory(), nil, Options{})
	for _, v := range registry.Variants() {
		cfg, err := s.Load(context.Background(), v)
		require.NoError(t, err)
		want, err := registry.DefaultConfig(v)
		require.NoError(t, err)
		assert.Equal(t, want, cfg)
	}

	_, err := s.Load(context.Background(), "poster")
	var unknown *registry.UnknownTemplateError
	assert.True(t, errors.As(err, &unknown))
}

func TestPatch_Sequential(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	local := cache.NewMemory()
	remote := newRecordingRemote()
	remote.delay = 20 * time.Millisecond
	s := New(userID, local, remote, Options{})

	u1 := func(prev types.TemplateConfig) types.TemplateConfig {
		prev.BackgroundColor = "#111111"
		prev.FontScaleLevel = 1
		return prev
	}
	u2 := func(prev types.TemplateConfig) types.TemplateConfig {
		prev.FontScaleLevel++
		prev.LinkColor = "#222222"
		return prev
	}

	_, err := s.Patch(ctx, registry.Classic, u1)
	require.NoError(t, err)
	final, err := s.Patch(ctx, registry.Classic, u2)
	require.NoError(t, err)

	initial, err := registry.DefaultConfig(registry.Classic)
	require.NoError(t, err)
	want := u2(u1(initial))
	assert.Equal(t, want, final)
	assertSameDocument(t, want, cachedConfig(t, local, userID, registry.Classic))

	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Close(closeCtx))

	var remoteCfg types.TemplateConfig
	require.NoError(t, json.Unmarshal(remote.lastWrite(), &remoteCfg))
	assertSameDocument(t, want, remoteCfg)
	assert.NotEmpty(t, remote.writes)
	assert.LessOrEqual(t, len(remote.writes), 2)
}

func TestPatch_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := New(uuid.New(), cache.NewMemory(), nil, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Patch(ctx, registry.Standard, func(prev types.TemplateConfig) types.TemplateConfig {
				gap := 0
				if prev.SectionGap != nil {
					gap = *prev.SectionGap
				}
				gap++
				prev.SectionGap = &gap
				return prev
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cfg, err := s.Load(ctx, registry.Standard)
	require.NoError(t, err)
	require.NotNil(t, cfg.SectionGap)
	assert.Equal(t, 50, *cfg.SectionGap)
}

func TestPatch_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	local := cache.NewMemory()
	s := New(userID, local, nil, Options{})

	tests := []struct {
		name    string
		updater Updater
	}{
		{"missing section", func(prev types.TemplateConfig) types.TemplateConfig {
			prev.SectionOrder = prev.SectionOrder[1:]
			return prev
		}},
		{"unknown section", func(prev types.TemplateConfig) types.TemplateConfig {
			prev.VisibleSections["photo"] = true
			return prev
		}},
		{"bad color", func(prev types.TemplateConfig) types.TemplateConfig {
			prev.SidebarColor = "teal"
			return prev
		}},
		{"scale", func(prev types.TemplateConfig) types.TemplateConfig {
			prev.FontScaleLevel = 4
			return prev
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := s.Patch(ctx, registry.Modern, tt.updater)
			assert.Error(t, err)
			want, _ := registry.DefaultConfig(registry.Modern)
			assert.Equal(t, want, cfg)
		})
	}

	key, _ := registry.CacheKey(registry.Modern)
	doc, err := local.Get(userID, key)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestPatch_UpdaterCannotAlias(t *testing.T) {
	ctx := context.Background()
	s := New(uuid.New(), cache.NewMemory(), nil, Options{})

	var leaked types.TemplateConfig
	_, err := s.Patch(ctx, registry.Classic, func(prev types.TemplateConfig) types.TemplateConfig {
		leaked = prev
		return prev
	})
	require.NoError(t, err)
	leaked.SectionOrder[0] = "achievements"
	leaked.VisibleSections["name"] = false

	cfg, err := s.Load(ctx, registry.Classic)
	require.NoError(t, err)
	assert.Equal(t, "name", cfg.SectionOrder[0])
	assert.True(t, cfg.VisibleSections["name"])
}

func TestLoad_WarmStartFromLocal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	local := cache.NewMemory()

	first := New(userID, local, nil, Options{})
	_, err := first.Patch(ctx, registry.Sidebar, func(prev types.TemplateConfig) types.TemplateConfig {
		prev.VisibleSections["projects"] = false
		return prev
	})
	require.NoError(t, err)

	second := New(userID, local, nil, Options{})
	cfg, err := second.Load(ctx, registry.Sidebar)
	require.NoError(t, err)
	assert.False(t, cfg.VisibleSections["projects"])
}

func TestLoad_WarmStartFromRemote(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	remote := newRecordingRemote()
	remote.docs[userID.String()+"/modern"] = []byte(`{"sectionOrder":["name","details","description","skills","experience","projects","education","achievements"],"visibleSections":{"skills":false},"fontScaleLevel":2,"textColors":{},"mainTextColors":{}}`)
	local := cache.NewMemory()

	s := New(userID, local, remote, Options{})
	cfg, err := s.Load(ctx, registry.Modern)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.FontScaleLevel)
	assert.False(t, cfg.VisibleSections["skills"])

	// The remote document is copied into the local cache.
	assert.Equal(t, 2, cachedConfig(t, local, userID, registry.Modern).FontScaleLevel)
	require.NoError(t, s.Close(ctx))
}

func TestLoad_IgnoresInvalidDocuments(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	local := cache.NewMemory()
	key, _ := registry.CacheKey(registry.Classic)
	require.NoError(t, local.Put(userID, key, []byte(`{"backgroundColor": 42}`)))

	remote := newRecordingRemote()
	remote.docs[userID.String()+"/classic"] = []byte(`not json`)

	s := New(userID, local, remote, Options{})
	cfg, err := s.Load(ctx, registry.Classic)
	require.NoError(t, err)
	want, _ := registry.DefaultConfig(registry.Classic)
	assert.Equal(t, want, cfg)
	require.NoError(t, s.Close(ctx))
}

func TestLoad_RemoteReadFailureFallsBack(t *testing.T) {
	remote := newRecordingRemote()
	remote.getErr = errors.New("connection refused")
	s := New(uuid.New(), cache.NewMemory(), remote, Options{})

	cfg, err := s.Load(context.Background(), registry.Standard)
	require.NoError(t, err)
	want, _ := registry.DefaultConfig(registry.Standard)
	assert.Equal(t, want, cfg)
	require.NoError(t, s.Close(context.Background()))
}

func TestDegradedMode(t *testing.T) {
	ctx := context.Background()
	remote := newRecordingRemote()
	s := New(uuid.New(), brokenCache{}, remote, Options{})
	assert.False(t, s.Degraded())

	cfg, err := s.Patch(ctx, registry.Classic, func(prev types.TemplateConfig) types.TemplateConfig {
		prev.FontFamily = "Helvetica, Arial, sans-serif"
		return prev
	})
	require.NoError(t, err)
	assert.Equal(t, "Helvetica, Arial, sans-serif", cfg.FontFamily)
	assert.True(t, s.Degraded())

	cfg, err = s.Load(ctx, registry.Classic)
	require.NoError(t, err)
	assert.Equal(t, "Helvetica, Arial, sans-serif", cfg.FontFamily)

	require.NoError(t, s.Close(ctx))
	assert.NotNil(t, remote.lastWrite())
}

func TestNew_WithoutLocalCache(t *testing.T) {
	s := New(uuid.New(), nil, nil, Options{})
	assert.True(t, s.Degraded())

	_, err := s.Patch(context.Background(), registry.Modern, func(prev types.TemplateConfig) types.TemplateConfig {
		prev.SidebarColor = "#000000"
		return prev
	})
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))
}

func TestRemoteWriteFailureIsNotReturned(t *testing.T) {
	ctx := context.Background()
	remote := newRecordingRemote()
	remote.putErr = errors.New("timeout")
	s := New(uuid.New(), cache.NewMemory(), remote, Options{})

	_, err := s.Patch(ctx, registry.Classic, func(prev types.TemplateConfig) types.TemplateConfig {
		prev.LinkColor = "#333333"
		return prev
	})
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))
	assert.Nil(t, remote.lastWrite())
}

func TestLoadAll(t *testing.T) {
	s := New(uuid.New(), cache.NewMemory(), nil, Options{})
	require.NoError(t, s.LoadAll(context.Background()))
	assert.Len(t, s.configs, len(registry.Variants()))
}

func TestReplicator_CloseDrainsAndDrops(t *testing.T) {
	remote := newRecordingRemote()
	r := NewReplicator(remote, time.Second)
	userID := uuid.New()
	for i := 0; i < 3; i++ {
		r.Enqueue(userID, "classic", []byte{byte('a' + i)})
	}
	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, []byte("c"), remote.lastWrite())

	r.Enqueue(userID, "classic", []byte("z"))
	assert.Equal(t, []byte("c"), remote.lastWrite())
	require.NoError(t, r.Close(context.Background()))
}

func TestReplicator_CloseHonorsContext(t *testing.T) {
	remote := newRecordingRemote()
	remote.delay = 200 * time.Millisecond
	r := NewReplicator(remote, time.Second)
	r.Enqueue(uuid.New(), "modern", []byte("{}"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Close(ctx), context.DeadlineExceeded)
	require.NoError(t, r.Close(context.Background()))
}

func TestPatch_StuckRemoteDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	remote := newBlockingRemote()
	s := New(uuid.New(), cache.NewMemory(), remote, Options{WriteTimeout: time.Minute})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 5; i++ {
			_, err := s.Patch(ctx, registry.Classic, func(prev types.TemplateConfig) types.TemplateConfig {
				prev.FontScaleLevel = i % 3
				prev.LinkColor = "#00000" + string(rune('0'+i))
				return prev
			})
			assert.NoError(t, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Patch blocked on the remote store")
	}
	assert.LessOrEqual(t, s.replicator.Pending(), 1)

	close(remote.release)
	require.NoError(t, s.Close(ctx))

	writes := remote.written()
	require.NotEmpty(t, writes)
	var last types.TemplateConfig
	require.NoError(t, json.Unmarshal(writes[len(writes)-1], &last))
	assert.Equal(t, "#000005", last.LinkColor)
	assert.Equal(t, 2, last.FontScaleLevel)
}

func TestReplicator_CoalescesPendingSnapshots(t *testing.T) {
	remote := newBlockingRemote()
	r := NewReplicator(remote, time.Minute)
	userID := uuid.New()

	r.Enqueue(userID, "classic", []byte("a"))
	assert.Equal(t, []byte("a"), <-remote.started)

	r.Enqueue(userID, "classic", []byte("b"))
	r.Enqueue(userID, "classic", []byte("c"))
	r.Enqueue(userID, "modern", []byte("m"))
	r.Enqueue(userID, "classic", []byte("d"))
	assert.Equal(t, 2, r.Pending())

	close(remote.release)
	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("d"), []byte("m")}, remote.written())
}

func TestReplicator_SharedAcrossStores(t *testing.T) {
	ctx := context.Background()
	remote := newRecordingRemote()
	r := NewReplicator(remote, time.Second)
	local := cache.NewMemory()

	for _, color := range []string{"#aaaaaa", "#bbbbbb"} {
		s := New(uuid.New(), local, remote, Options{Replicator: r})
		_, err := s.Patch(ctx, registry.Modern, func(prev types.TemplateConfig) types.TemplateConfig {
			prev.SidebarColor = color
			return prev
		})
		require.NoError(t, err)
		require.NoError(t, s.Close(ctx))
	}

	require.NoError(t, r.Close(ctx))
	assert.Len(t, remote.docs, 2)
}

func TestPatch_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	local := cache.NewMemory()
	s := New(userID, local, nil, Options{})

	reordered := func(prev types.TemplateConfig) []string {
		order := append([]string(nil), prev.SectionOrder...)
		order[0], order[1] = order[1], order[0]
		return order
	}

	_, err := s.Patch(ctx, registry.Classic, func(prev types.TemplateConfig) types.TemplateConfig {
		prev.SectionOrder = reordered(prev)
		prev.BackgroundColor = "#11223344"
		return prev
	})
	require.Error(t, err)

	saved, err := s.Patch(ctx, registry.Classic, func(prev types.TemplateConfig) types.TemplateConfig {
		prev.SectionOrder = reordered(prev)
		prev.BackgroundColor = "#112233"
		prev.BorderWidth = "1.5px"
		prev.FontFamily = "Times New Roman, serif"
		return prev
	})
	require.NoError(t, err)

	reloaded, err := New(userID, local, nil, Options{}).Load(ctx, registry.Classic)
	require.NoError(t, err)
	assert.Equal(t, []string{"details", "name"}, reloaded.SectionOrder[:2])
	assertSameDocument(t, saved, reloaded)
}

func TestDefaulted(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	local := cache.NewMemory()
	s := New(userID, local, nil, Options{})

	_, err := s.Load(ctx, registry.Sidebar)
	require.NoError(t, err)
	assert.True(t, s.Defaulted(registry.Sidebar))
	assert.False(t, s.Defaulted(registry.Classic))

	_, err = s.Patch(ctx, registry.Sidebar, func(prev types.TemplateConfig) types.TemplateConfig { return prev })
	require.NoError(t, err)
	assert.False(t, s.Defaulted(registry.Sidebar))

	next := New(userID, local, nil, Options{})
	_, err = next.Load(ctx, registry.Sidebar)
	require.NoError(t, err)
	assert.False(t, next.Defaulted(registry.Sidebar))
}
