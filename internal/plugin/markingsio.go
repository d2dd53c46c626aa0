package plugin

import (
	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/internal/storage"
	"github.com/serieslab/inspector/pkg/jsonutil"
)

// MarkingsIO bridges the session model to the marking store. It
// persists save snapshots, fetches stored markings on load requests,
// and records interval-tag exports.
//
// Load requests are deduplicated per metadata fingerprint: asking for
// the same item twice is a no-op unless the request carries force.
type MarkingsIO struct {
	log   zerolog.Logger
	store storage.Store

	model  *session.Model
	loaded map[string]bool
}

// NewMarkingsIO builds the persistence plugin.
func NewMarkingsIO(deps Deps) *MarkingsIO {
	return &MarkingsIO{
		log:    deps.Log.With().Str("component", "markingsio").Logger(),
		store:  deps.Store,
		loaded: make(map[string]bool),
	}
}

func (p *MarkingsIO) Name() string { return "markingsio" }

// Attach subscribes to the save, load, and tag hooks.
func (p *MarkingsIO) Attach(m *session.Model) error {
	p.model = m
	m.OnSaveRequested(p.handleSave)
	m.OnLoadRequested(p.handleLoad)
	m.OnIntervalTagged(p.handleTag)
	return nil
}

func (p *MarkingsIO) Detach() {}

// handleSave upserts the changed markings and deletes the
// tombstones. Tombstones are acknowledged per item only after the
// delete succeeds, so a storage failure leaves them in place for the
// next save.
func (p *MarkingsIO) handleSave(changed, deleted []session.ItemSnapshot) {
	for _, snap := range changed {
		if err := p.store.UpsertMarkings(snap.Metadata, snap.Markings); err != nil {
			p.log.Error().Err(err).Str("item", snap.Item.Name).Msg("saving markings failed")
		}
	}
	for _, snap := range deleted {
		if err := p.store.DeleteMarkings(snap.Metadata, snap.Markings); err != nil {
			p.log.Error().Err(err).Str("item", snap.Item.Name).Msg("deleting stored markings failed")
			continue
		}
		p.model.AcknowledgeSave(snap.Item)
	}
}

// handleLoad fetches stored markings for one item's metadata and
// applies them, once per fingerprint unless forced.
func (p *MarkingsIO) handleLoad(metadata map[string]string, start, end float64, force bool) {
	key := jsonutil.Fingerprint(metadata)
	if key == "" {
		p.log.Debug().Msg("skipping load for item without metadata")
		return
	}
	if p.loaded[key] && !force {
		p.log.Debug().Str("key", key).Msg("skipping duplicate load")
		return
	}

	records, err := p.store.QueryMarkings(metadata, start, end)
	if err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("loading markings failed")
		return
	}
	p.loaded[key] = true
	if len(records) == 0 {
		return
	}
	p.log.Info().Str("key", key).Int("count", len(records)).Msg("markings loaded")
	p.model.ApplyMarkings(records, metadata)
}

func (p *MarkingsIO) handleTag(metadata map[string]string, start, end float64, tag string) {
	if len(metadata) == 0 {
		p.log.Debug().Msg("skipping tag for item without metadata")
		return
	}
	if err := p.store.SaveIntervalTag(metadata, start, end, tag); err != nil {
		p.log.Error().Err(err).Str("tag", tag).Msg("saving interval tag failed")
	}
}
