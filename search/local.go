package search

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/melodia-cli/melodia/filesystem"
	"github.com/melodia-cli/melodia/key"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Local scans the configured library directory for audio files.
type Local struct {
	root string
}

// NewLocal returns a scanner over the configured library root, falling back
// to the user's music directory when unset.
func NewLocal() *Local {
	root := viper.GetString(key.LibraryPath)
	if root == "" {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, "Music")
		}
	}
	return &Local{root: root}
}

// NewLocalAt returns a scanner over an explicit root, used by tests.
func NewLocalAt(root string) *Local {
	return &Local{root: root}
}

// Search walks the library and returns items whose file names match the
// query by substring or fuzzy match, closest matches first. An empty query
// returns the whole library in walk order.
func (l *Local) Search(query string) ([]media.Item, error) {
	extensions := viper.GetStringSlice(key.LibraryExtensions)
	if len(extensions) == 0 {
		extensions = []string{".mp3", ".wav", ".flac", ".ogg", ".m4a"}
	}

	loweredQuery := strings.ToLower(query)
	var items []media.Item

	err := filesystem.API().Walk(l.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			log.Warnf("library scan: %v", err)
			return nil
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !lo.Contains(extensions, ext) {
			return nil
		}

		name := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ext))
		if loweredQuery != "" &&
			!strings.Contains(name, loweredQuery) &&
			!fuzzy.Match(loweredQuery, name) {
			return nil
		}

		items = append(items, l.readItem(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if loweredQuery != "" {
		sort.SliceStable(items, func(a, b int) bool {
			nameA := strings.ToLower(items[a].Title)
			nameB := strings.ToLower(items[b].Title)
			return levenshtein.Distance(loweredQuery, nameA) < levenshtein.Distance(loweredQuery, nameB)
		})
	}

	return items, nil
}

// readItem builds an item for the file, pulling title and artist from its
// audio tags when they are readable.
func (l *Local) readItem(path string) media.Item {
	title, artist := "", ""

	if file, err := filesystem.API().Open(path); err == nil {
		if meta, err := tag.ReadFrom(file); err == nil {
			title = meta.Title()
			artist = meta.Artist()
		}
		_ = file.Close()
	}

	return media.NewLocal(title, artist, 0, path)
}
