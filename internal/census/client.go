package census

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"

	"cartographs/internal/domain"
	xlog "cartographs/internal/log"
)

// DefaultBaseURL is the root of the Census TIGER/Line download tree.
const DefaultBaseURL = "https://www2.census.gov/geo/tiger"

// ErrChecksumMismatch is returned when a pinned digest does not match.
var ErrChecksumMismatch = errors.New("archive checksum mismatch")

// Config configures a Client.
type Config struct {
	BaseURL   string
	UserAgent string
	// RateLimit is requests per second; Burst is the bucket size.
	RateLimit float64
	Burst     int
	// Checksums pins archive names to hex BLAKE2b-256 digests.
	Checksums map[string]string
	// HTTP is optional; a client with Timeout is built when nil.
	HTTP    *http.Client
	Timeout time.Duration
}

// Client fetches archives over HTTP.
type Client struct {
	base      string
	userAgent string
	checksums map[string]string
	http      *http.Client
	limiter   *rate.Limiter
	log       zerolog.Logger
}

// New returns a Client with defaults filled in for zero fields.
func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "cartographs/1.0"
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	hc := cfg.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	pins := make(map[string]string, len(cfg.Checksums))
	for k, v := range cfg.Checksums {
		pins[k] = strings.ToLower(v)
	}
	return &Client{
		base:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		checksums: pins,
		http:      hc,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		log:       xlog.WithComponent(logger, "census"),
	}
}

var _ domain.ArchiveFetcher = (*Client)(nil)

// Base returns the base URL archives are fetched from.
func (c *Client) Base() string { return c.base }

// Fetch downloads the named archive for year into dir/name.
func (c *Client) Fetch(ctx context.Context, year int, name, dir string) (domain.Archive, error) {
	u := ArchiveURL(c.base, year, name)
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Archive{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Archive{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Archive{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Archive{}, fmt.Errorf("census get %s: %s", u, resp.Status)
	}

	path := filepath.Join(dir, name)
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return domain.Archive{}, fmt.Errorf("create pending archive: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			c.log.Debug().Err(err).Str(xlog.FieldArchive, name).Msg("cleanup pending archive")
		}
	}()

	h, err := blake2b.New256(nil)
	if err != nil {
		return domain.Archive{}, err
	}
	n, err := io.Copy(io.MultiWriter(pending, h), resp.Body)
	if err != nil {
		return domain.Archive{}, fmt.Errorf("download %s: %w", u, err)
	}
	digest := hex.EncodeToString(h.Sum(nil))

	if want, ok := c.checksums[name]; ok && want != digest {
		return domain.Archive{}, fmt.Errorf("%w: %s: got %s, want %s", ErrChecksumMismatch, name, digest, want)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return domain.Archive{}, fmt.Errorf("atomically replace archive: %w", err)
	}

	c.log.Debug().
		Str(xlog.FieldURL, u).
		Int64(xlog.FieldBytes, n).
		Str(xlog.FieldDigest, digest).
		Dur(xlog.FieldDuration, time.Since(start)).
		Msg("archive downloaded")

	return domain.Archive{Name: name, URL: u, Path: path, Size: n, Digest: digest}, nil
}
