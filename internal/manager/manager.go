// Package manager holds the live IndexState and serializes builds and
// publication, per spec.md section 4.8. It is the only component that
// mutates shared state; routers, lexical/vector indexes, and the
// retrieval pipeline are all pure functions over an immutable snapshot.
package manager

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"github.com/rs/zerolog/log"

	"github.com/mvp-joe/docsearch/internal/apperr"
	"github.com/mvp-joe/docsearch/internal/config"
	"github.com/mvp-joe/docsearch/internal/docmodel"
	"github.com/mvp-joe/docsearch/internal/docparser"
	"github.com/mvp-joe/docsearch/internal/embed"
	"github.com/mvp-joe/docsearch/internal/indexbuild"
	"github.com/mvp-joe/docsearch/internal/indexstate"
	"github.com/mvp-joe/docsearch/internal/registry"
	"github.com/mvp-joe/docsearch/internal/retrieval"
	"github.com/mvp-joe/docsearch/internal/router"
	"github.com/mvp-joe/docsearch/internal/snapshot"
	"github.com/mvp-joe/docsearch/internal/textutil"
)

const (
	queryCacheCapacity     = 256
	embeddingCacheCapacity = 512
)

// SearchResponse is the result of a search operation.
type SearchResponse struct {
	Routing []router.Selection
	Results []retrieval.Result
}

// Manager holds the live IndexState and the locks that serialize access
// to it, per spec.md section 5.
type Manager struct {
	cfg      *config.Config
	embedder embed.Provider

	buildLock sync.Mutex
	embedLock sync.Mutex

	stateLock sync.RWMutex
	state     *indexstate.IndexState

	queryCache     otter.Cache[string, SearchResponse]
	embeddingCache otter.Cache[string, []float32]
}

// New constructs a Manager with empty state and fresh caches. The
// IndexState is populated lazily by EnsureReady.
func New(cfg *config.Config, embedder embed.Provider) (*Manager, error) {
	queryCache, err := otter.MustBuilder[string, SearchResponse](queryCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("build query cache: %w", err)
	}
	embeddingCache, err := otter.MustBuilder[string, []float32](embeddingCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("build embedding cache: %w", err)
	}

	return &Manager{
		cfg:            cfg,
		embedder:       embedder,
		queryCache:     queryCache,
		embeddingCache: embeddingCache,
	}, nil
}

func (m *Manager) currentState() *indexstate.IndexState {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()
	return m.state
}

func (m *Manager) publish(state *indexstate.IndexState) {
	m.stateLock.Lock()
	m.state = state
	m.stateLock.Unlock()
	m.queryCache.Clear()
	m.embeddingCache.Clear()
}

// EnsureReady makes sure a built IndexState is live, loading a snapshot
// or performing a full build as needed, per spec.md section 4.8.
func (m *Manager) EnsureReady(ctx context.Context) error {
	if m.currentState() != nil {
		return nil
	}

	m.buildLock.Lock()
	defer m.buildLock.Unlock()

	if m.state != nil {
		return nil
	}

	loaded, err := m.tryLoadSnapshot()
	if err == nil {
		m.publish(loaded)
		log.Info().Int("revision", loaded.Revision).Msg("index_snapshot_loaded")
		return nil
	}

	if errors.Is(err, snapshot.ErrSchemaMismatch) {
		log.Error().Err(err).Msg("index_snapshot_stale")
		return apperr.Wrap(apperr.KindStale, "index snapshot has an unsupported schema version", err)
	}

	if !m.cfg.AutoIndex {
		log.Error().Err(err).Msg("index_snapshot_stale")
		return apperr.Wrap(apperr.KindNotReady, "no valid index snapshot and auto_index is disabled", err)
	}

	log.Info().Err(err).Msg("index_snapshot_missing")

	buildID := uuid.New().String()
	log.Info().Str("build_id", buildID).Msg("index_build_started")

	state, err := m.buildAll(ctx, nil, 1)
	if err != nil {
		return err
	}
	m.publish(state)
	m.saveSnapshot(state)
	log.Info().Str("build_id", buildID).Int("revision", state.Revision).Msg("index_build_done")
	return nil
}

// tryLoadSnapshot loads and validates the on-disk snapshot, rebuilding
// the in-memory lexical/vector indexes from its serialized chunks.
func (m *Manager) tryLoadSnapshot() (*indexstate.IndexState, error) {
	registryBytes, err := os.ReadFile(m.cfg.Registry.Path)
	if err != nil {
		return nil, fmt.Errorf("read registry for signature: %w", err)
	}

	sig := m.signature(registryBytes)

	rec, err := snapshot.Load(m.cfg.Snapshot.Path, sig)
	if err != nil {
		return nil, err
	}

	return stateFromRecord(rec.State)
}

func (m *Manager) signature(registryBytes []byte) string {
	registryPath := m.cfg.Registry.Path
	if abs, err := filepath.Abs(registryPath); err == nil {
		registryPath = abs
	}
	return snapshot.Signature(registryPath, registryBytes, m.cfg.Embedding.Model, m.cfg.Chunking.Words, m.cfg.Chunking.OverlapWords)
}

func (m *Manager) saveSnapshot(state *indexstate.IndexState) {
	registryBytes, err := os.ReadFile(m.cfg.Registry.Path)
	if err != nil {
		log.Error().Err(err).Msg("index_snapshot_save_error")
		return
	}

	rec := snapshot.Record{
		SchemaVersion: snapshot.SchemaVersion,
		Signature:     m.signature(registryBytes),
		State:         recordFromState(state),
	}

	if err := snapshot.Save(m.cfg.Snapshot.Path, rec); err != nil {
		log.Error().Err(err).Msg("index_snapshot_save_error")
		return
	}
	log.Info().Int("revision", state.Revision).Msg("index_snapshot_saved")
}

// Reindex reloads the registry and rebuilds the targeted docsets (or all
// docsets if none are specified), publishing a new IndexState with an
// incremented revision, per spec.md section 4.8.
func (m *Manager) Reindex(ctx context.Context, docsetIDs []string) error {
	m.buildLock.Lock()
	defer m.buildLock.Unlock()

	start := time.Now()
	buildID := uuid.New().String()

	docsets, err := registry.Load(m.cfg.Registry.Path)
	if err != nil {
		return fmt.Errorf("reload registry: %w", err)
	}

	targeted := make(map[string]bool, len(docsetIDs))
	for _, id := range docsetIDs {
		targeted[id] = true
	}

	byID := make(map[string]registry.Docset, len(docsets))
	for _, ds := range docsets {
		byID[ds.DocsetID] = ds
	}
	for id := range targeted {
		ds, ok := byID[id]
		if !ok || !ds.IsEnabled() {
			return apperr.New(apperr.KindBadInput, fmt.Sprintf("docset %q is unknown or disabled", id))
		}
	}

	prev := m.currentState()
	nextRevision := 1
	if prev != nil {
		nextRevision = prev.Revision + 1
	}

	state, err := m.buildSelectively(ctx, docsets, targeted, prev, nextRevision)
	if err != nil {
		return err
	}

	m.publish(state)
	m.saveSnapshot(state)

	log.Info().
		Str("build_id", buildID).
		Int("revision", state.Revision).
		Int("docset_count", len(state.Indexes)).
		Dur("elapsed", time.Since(start)).
		Msg("reindex_done")

	return nil
}

func (m *Manager) buildAll(ctx context.Context, docsets []registry.Docset, revision int) (*indexstate.IndexState, error) {
	if docsets == nil {
		var err error
		docsets, err = registry.Load(m.cfg.Registry.Path)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
	}
	return m.buildSelectively(ctx, docsets, nil, nil, revision)
}

// buildSelectively builds every enabled docset, except that a docset not
// present in targeted is carried over unchanged from prev when prev
// already has a built index for it.
func (m *Manager) buildSelectively(ctx context.Context, docsets []registry.Docset, targeted map[string]bool, prev *indexstate.IndexState, revision int) (*indexstate.IndexState, error) {
	indexes := make(map[string]*indexstate.DocsetIndex, len(docsets))

	for _, ds := range docsets {
		if !ds.IsEnabled() {
			continue
		}

		if (targeted == nil || !targeted[ds.DocsetID]) && prev != nil {
			if existing, ok := prev.Indexes[ds.DocsetID]; ok {
				indexes[ds.DocsetID] = existing
				continue
			}
		}

		di, err := indexbuild.Build(ctx, ds, m.cfg.Chunking, m.embedder)
		if err != nil {
			return nil, fmt.Errorf("build docset %q: %w", ds.DocsetID, err)
		}
		indexes[ds.DocsetID] = di
	}

	return indexstate.New(revision, indexes), nil
}

// Search routes, retrieves, and fuses results for a query, per spec.md
// section 4.8.
func (m *Manager) Search(ctx context.Context, query, sourceHint string, rctx router.Context, topK int) (*SearchResponse, error) {
	if err := m.EnsureReady(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, apperr.New(apperr.KindBadInput, "query must not be empty")
	}
	if topK <= 0 || topK > 20 {
		topK = m.cfg.Retrieval.ResultsTopK
	}

	state := m.currentState()

	cacheKey := m.searchCacheKey(state.Revision, query, sourceHint, rctx, topK)
	if cached, ok := m.queryCache.Get(cacheKey); ok {
		return &cached, nil
	}

	start := time.Now()

	docsets := make([]registry.Docset, 0, len(state.Docsets))
	for _, ds := range state.Docsets {
		docsets = append(docsets, ds)
	}
	sort.Slice(docsets, func(i, j int) bool { return docsets[i].DocsetID < docsets[j].DocsetID })

	selections := router.Route(docsets, query, sourceHint, rctx, m.cfg.Router.MaxDocsets)

	queryVector, err := m.embedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryTokens := textutil.Tokenize(query)

	var allCandidates []retrieval.Candidate
	for _, sel := range selections {
		di, ok := state.Indexes[sel.DocsetID]
		if !ok {
			continue
		}
		allCandidates = append(allCandidates, retrieval.CandidatesForDocset(di, queryTokens, queryVector, m.cfg.Retrieval.BM25TopK, m.cfg.Retrieval.VectorTopK)...)
	}

	merged := retrieval.MergeByDocRef(allCandidates)
	fused := retrieval.Fuse(merged, topK)

	results := make([]retrieval.Result, len(fused))
	for i, s := range fused {
		r := retrieval.Render(s.Candidate, s.Score)
		r.Version = state.Docsets[s.Candidate.DocsetID].Version
		results[i] = r
	}

	resp := SearchResponse{Routing: selections, Results: results}
	m.queryCache.Set(cacheKey, resp)

	log.Info().
		Str("query", query).
		Dur("elapsed", time.Since(start)).
		Int("result_count", len(results)).
		Msg("search_done")

	return &resp, nil
}

func (m *Manager) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if v, ok := m.embeddingCache.Get(query); ok {
		return v, nil
	}

	m.embedLock.Lock()
	defer m.embedLock.Unlock()

	if v, ok := m.embeddingCache.Get(query); ok {
		return v, nil
	}

	vectors, err := m.embedder.Embed(ctx, []string{query}, embed.EmbedModeQuery)
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for 1 query", len(vectors))
	}

	m.embeddingCache.Set(query, vectors[0])
	return vectors[0], nil
}

func (m *Manager) searchCacheKey(revision int, query, sourceHint string, rctx router.Context, topK int) string {
	deps := append([]string(nil), rctx.Dependencies...)
	sort.Strings(deps)

	h := sha1.New()
	fmt.Fprintf(h, "%d|%s|%s|%s|%s|%d", revision, query, sourceHint, rctx.Language, strings.Join(deps, ","), topK)
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// OpenResponse is the result of opening a doc_ref: the full section, the
// owning docset's version, and resolved asset URLs per spec.md section 6.
// AssetURLs is index-aligned with Section.Assets; an empty string marks an
// asset with no docset-relative Path (an external or data URL, an empty
// src, or a path escaping the docset root), so it has no /asset endpoint
// to render.
type OpenResponse struct {
	Section   *docmodel.DocSection
	Version   string
	AssetURLs []string
}

// Open resolves a doc_ref to its full section, the owning docset's
// version, and resolved asset URLs, per spec.md section 4.8 and section 6.
func (m *Manager) Open(ctx context.Context, docRef string) (*OpenResponse, error) {
	if err := m.EnsureReady(ctx); err != nil {
		return nil, err
	}

	state := m.currentState()
	_, section, di, ok := state.Lookup(docRef)
	if !ok {
		log.Warn().Str("doc_ref", docRef).Msg("docs_api_error")
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("unknown doc_ref %q", docRef))
	}

	assetURLs := make([]string, len(section.Assets))
	for i, a := range section.Assets {
		if a.Path == nil {
			continue
		}
		assetURLs[i] = assetURL(di.Docset.DocsetID, *a.Path)
	}

	return &OpenResponse{Section: section, Version: di.Docset.Version, AssetURLs: assetURLs}, nil
}

// assetURL renders the /asset endpoint URL spec.md section 6 requires for
// a docset-relative asset path: /asset?docset_id=<urlenc>&path=<urlenc>.
func assetURL(docsetID, relativePath string) string {
	q := url.Values{}
	q.Set("docset_id", docsetID)
	q.Set("path", relativePath)
	return "/asset?" + q.Encode()
}

// AssetPath resolves a docset-relative asset path to a filesystem path,
// per spec.md section 4.4 and section 6.
func (m *Manager) AssetPath(ctx context.Context, docsetID, relativePath string) (string, error) {
	if err := m.EnsureReady(ctx); err != nil {
		return "", err
	}

	state := m.currentState()
	ds, ok := state.Docsets[docsetID]
	if !ok {
		return "", apperr.New(apperr.KindBadInput, fmt.Sprintf("unknown docset %q", docsetID))
	}

	return docparser.ResolveAssetFile(ds.RootPath, relativePath)
}

// ListDocsets returns the currently registered docsets, reloading the
// registry fresh; this does not require built state, per spec.md
// section 6.
func (m *Manager) ListDocsets() ([]registry.Docset, error) {
	return registry.Load(m.cfg.Registry.Path)
}
