// workers/catalog_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"questchain/models"
	"questchain/services"
	"questchain/utils"
)

const catalogEndpoint = "/api/v1/public/quests"

// CatalogChangesResponse is what the partner catalog service returns for a ?since= query.
type CatalogChangesResponse struct {
	Projects   []models.Project `json:"projects"`
	Quests     []models.Quest   `json:"quests"`
	ServerTime time.Time        `json:"server_time"`
}

// CatalogSink receives newly published entries. Implemented by *services.QuestStore.
type CatalogSink interface {
	AddProject(p models.Project) error
	AddQuest(q models.Quest) error
}

type SyncResult struct {
	Projects int
	Quests   int
	Skipped  int
	Failed   int
}

// CatalogSyncWorker polls the partner catalog service and feeds new projects and quests into the store.
type CatalogSyncWorker struct {
	sink         CatalogSink
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client

	mu    sync.Mutex
	since time.Time
}

func NewCatalogSyncWorker(sink CatalogSink, baseURL, serviceToken string, interval time.Duration) *CatalogSyncWorker {
	return &CatalogSyncWorker{
		sink:         sink,
		interval:     interval,
		baseURL:      baseURL,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
	}
}

func (w *CatalogSyncWorker) Start(ctx context.Context) {
	log.Info().Str("url", w.baseURL).Dur("interval", w.interval).Msg("[SYNC] starting catalog sync worker")
	go w.run(ctx)
}

func (w *CatalogSyncWorker) run(ctx context.Context) {
	if _, err := w.SyncOnce(ctx); err != nil {
		log.Warn().Err(err).Msg("[SYNC] initial catalog sync failed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.SyncOnce(ctx); err != nil {
				log.Error().Err(err).Msg("[SYNC] catalog sync failed")
			}
		case <-ctx.Done():
			log.Info().Msg("[SYNC] catalog sync worker stopped")
			return
		}
	}
}

// SyncOnce fetches changes since the last successful sync and applies them. Entries the store
// already has are skipped; the cursor only advances when the fetch succeeded.
func (w *CatalogSyncWorker) SyncOnce(ctx context.Context) (SyncResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	started := time.Now().UTC()
	resp, err := w.fetch(ctx, w.since)
	if err != nil {
		return SyncResult{}, err
	}

	var res SyncResult
	for _, p := range resp.Projects {
		w.apply(&res, &res.Projects, "project", p.ID, w.sink.AddProject(p))
	}
	for _, q := range resp.Quests {
		if q.Status == "" {
			q.Status = models.QuestStatusActive
		}
		w.apply(&res, &res.Quests, "quest", q.ID, w.sink.AddQuest(q))
	}

	if resp.ServerTime.IsZero() {
		w.since = started
	} else {
		w.since = resp.ServerTime.UTC()
	}

	log.Info().
		Int("projects", res.Projects).
		Int("quests", res.Quests).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("[SYNC] catalog synced")
	return res, nil
}

func (w *CatalogSyncWorker) apply(res *SyncResult, added *int, kind, id string, err error) {
	switch {
	case err == nil:
		*added++
	case errors.Is(err, services.ErrDuplicateID):
		res.Skipped++
	default:
		res.Failed++
		log.Warn().Err(err).Str(kind, id).Msg("[SYNC] rejected catalog entry")
	}
}

func (w *CatalogSyncWorker) fetch(ctx context.Context, since time.Time) (*CatalogChangesResponse, error) {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog service URL '%s': %w", w.baseURL, err)
	}
	endpointURL := base.JoinPath(catalogEndpoint)
	q := endpointURL.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	endpointURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if w.serviceToken != "" {
		req.Header.Set("X-Service-Token", w.serviceToken)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog service request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("catalog service returned %d: %s", resp.StatusCode, body)
	}

	var out CatalogChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return &out, nil
}
