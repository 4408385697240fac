package charts

import (
	"sync"
	"time"
)

// Rendered PNGs are cached briefly so a repeated comparison doesn't redraw.
const cacheTTL = 60 * time.Second

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

var (
	imageCache   = map[string]cacheEntry{}
	imageCacheMu sync.Mutex
)

func cacheGet(key string) ([]byte, bool) {
	imageCacheMu.Lock()
	defer imageCacheMu.Unlock()
	if entry, ok := imageCache[key]; ok {
		if time.Now().Before(entry.createdAt.Add(cacheTTL)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
	}
	return nil, false
}

func cacheSet(key string, img []byte) {
	imageCacheMu.Lock()
	imageCache[key] = cacheEntry{createdAt: time.Now(), image: img}
	imageCacheMu.Unlock()
}
