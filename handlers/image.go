package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"moviemonk/utils"
)

// ImageHandler serves poster and backdrop artwork through a local disk cache,
// optionally downscaled. Requests name artwork by its provider path and size
// token, so the only hosts ever fetched are the CDN and the placeholder
// service.
type ImageHandler struct {
	cacheDir string
	httpc    *http.Client

	mu         sync.Mutex
	inProgress map[string]chan struct{}
}

func NewImageHandler(cacheDir string) *ImageHandler {
	dir := filepath.Join(cacheDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[image] could not create cache dir %s: %v", dir, err)
	}

	return &ImageHandler{
		cacheDir:   dir,
		httpc:      &http.Client{Timeout: 30 * time.Second},
		inProgress: make(map[string]chan struct{}),
	}
}

// Artwork proxies one image.
// Query params:
//   - path: provider image path, e.g. /abc.jpg (empty serves the placeholder)
//   - type: "poster" (default) or "backdrop"
//   - size: CDN size token, defaults per type
//   - w:    downscale target width
//   - q:    JPEG quality 1-100, default 80
func (h *ImageHandler) Artwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var source string
	if q.Get("type") == "backdrop" {
		source = utils.BackdropURL(q.Get("path"), q.Get("size"))
	} else {
		source = utils.ImageURL(q.Get("path"), q.Get("size"))
	}

	if !allowedImageSource(source) {
		writeError(w, http.StatusForbidden, "image source not allowed")
		return
	}

	width := 0
	if v, err := strconv.Atoi(q.Get("w")); err == nil && v > 0 && v <= 2000 {
		width = v
	}
	quality := 80
	if v, err := strconv.Atoi(q.Get("q")); err == nil && v >= 1 && v <= 100 {
		quality = v
	}

	key := cacheKey(source, width, quality)
	cachePath := filepath.Join(h.cacheDir, key+".jpg")

	if h.serveCached(w, cachePath) {
		return
	}

	if done := h.claim(key); done == nil {
		// Another request is fetching the same artwork.
		h.await(key)
		if h.serveCached(w, cachePath) {
			return
		}
		writeError(w, http.StatusBadGateway, "image fetch failed")
		return
	}
	defer h.release(key)

	resp, err := h.httpc.Get(source)
	if err != nil {
		log.Printf("[image] fetch %s: %v", source, err)
		writeError(w, http.StatusBadGateway, "image fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[image] fetch %s: status %d", source, resp.StatusCode)
		writeError(w, resp.StatusCode, "image source error")
		return
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		log.Printf("[image] decode %s: %v", source, err)
		writeError(w, http.StatusInternalServerError, "image decode failed")
		return
	}

	img = downscale(img, width)

	if err := h.writeCache(cachePath, img, quality); err != nil {
		log.Printf("[image] cache write: %v", err)
		w.Header().Set("Content-Type", "image/jpeg")
		jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		return
	}

	h.serveCached(w, cachePath)
}

func (h *ImageHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Clear empties the artwork cache.
func (h *ImageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.ClearCache(); err != nil {
		log.Printf("[image] clear cache: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to clear image cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCache removes every cached image file.
func (h *ImageHandler) ClearCache() error {
	entries, err := os.ReadDir(h.cacheDir)
	if err != nil {
		return err
	}

	failed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		if err := os.Remove(filepath.Join(h.cacheDir, entry.Name())); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to remove %d cached images", failed)
	}
	return nil
}

func (h *ImageHandler) serveCached(w http.ResponseWriter, cachePath string) bool {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return false
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=2592000")
	w.Write(data)
	return true
}

// claim marks key as in flight, returning nil when someone else holds it.
func (h *ImageHandler) claim(key string) chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.inProgress[key]; busy {
		return nil
	}
	ch := make(chan struct{})
	h.inProgress[key] = ch
	return ch
}

func (h *ImageHandler) await(key string) {
	h.mu.Lock()
	ch, ok := h.inProgress[key]
	h.mu.Unlock()
	if ok {
		<-ch
	}
}

func (h *ImageHandler) release(key string) {
	h.mu.Lock()
	if ch, ok := h.inProgress[key]; ok {
		close(ch)
		delete(h.inProgress, key)
	}
	h.mu.Unlock()
}

func (h *ImageHandler) writeCache(cachePath string, img image.Image, quality int) error {
	tmp := cachePath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, cachePath)
}

// downscale resizes img to width, keeping aspect ratio. Upscaling is never
// done; zero width returns img untouched.
func downscale(img image.Image, width int) image.Image {
	if width <= 0 {
		return img
	}
	bounds := img.Bounds()
	if width >= bounds.Dx() {
		return img
	}

	height := int(float64(bounds.Dy()) * float64(width) / float64(bounds.Dx()))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func allowedImageSource(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	switch u.Host {
	case "image.tmdb.org", "via.placeholder.com":
		return true
	}
	return false
}

func cacheKey(source string, width, quality int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", source, width, quality)))
	return hex.EncodeToString(sum[:16])
}
