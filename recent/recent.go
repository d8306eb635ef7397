// Package recent tracks and persists the most recently played media items.
package recent

import (
	"time"

	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/media"
	"github.com/melodia-cli/melodia/where"
	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// SavedItem is one playback record. The identity key dedups re-plays; the
// timestamp keeps the list ordered by recency.
type SavedItem struct {
	Item     media.Item `json:"item"`
	PlayedAt int64      `json:"played_at"`
}

func (s *SavedItem) String() string {
	return s.Item.String()
}

// cacher provides an abstracted, disk-backed registry for playback records.
var cacher = gache.New[map[string]*SavedItem](
	&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the playback records, most recent first.
func Get() ([]*SavedItem, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []*SavedItem{}, nil
	}

	records := make([]*SavedItem, 0, len(cached))
	for _, record := range cached {
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b *SavedItem) int {
		return int(b.PlayedAt - a.PlayedAt)
	})
	return records, nil
}

// Save records a playback, replacing any earlier record of the same item
// and pruning the registry down to the configured size.
func Save(item media.Item) error {
	if !viper.GetBool(key.RecentSaveOnPlay) {
		return nil
	}

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*SavedItem)
	}

	cached[item.Key()] = &SavedItem{
		Item:     item,
		PlayedAt: time.Now().Unix(),
	}

	limit := viper.GetInt(key.RecentSize)
	if limit > 0 && len(cached) > limit {
		pruneOldest(cached, len(cached)-limit)
	}

	return cacher.Set(cached)
}

// Remove permanently deletes a playback record.
func Remove(record *SavedItem) error {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return nil
	}

	delete(cached, record.Item.Key())
	return cacher.Set(cached)
}

func pruneOldest(cached map[string]*SavedItem, count int) {
	for ; count > 0; count-- {
		oldestKey := ""
		var oldest int64
		for k, record := range cached {
			if oldestKey == "" || record.PlayedAt < oldest {
				oldestKey = k
				oldest = record.PlayedAt
			}
		}
		delete(cached, oldestKey)
	}
}
