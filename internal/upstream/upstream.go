// Package upstream fetches song metadata from the official game servers.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/rest/httpc"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// secret is the shared form secret every official endpoint expects.
const secret = "Wmfd2893gb7"

type Config struct {
	URL     string        `json:",default=https://www.boomlings.com/database"`
	Timeout time.Duration `json:",default=10s"`
}

type Client struct {
	base string
	svc  httpc.Service
}

var _ dom.UpstreamGame = (*Client)(nil)

func New(c Config) *Client {
	return &Client{
		base: strings.TrimRight(c.URL, "/"),
		svc:  httpc.NewServiceWithClient("boomlings", &http.Client{Timeout: c.Timeout}),
	}
}

// SongInfo looks up one song. Unknown and upstream-blocked songs report
// dom.ErrNotFound.
func (c *Client) SongInfo(ctx context.Context, id int) (*dom.Song, error) {
	form := url.Values{"songID": {strconv.Itoa(id)}, "secret": {secret}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/getGJSongInfo.php", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// The official servers reject requests that carry a user agent.
	req.Header.Set("User-Agent", "")

	resp, err := c.svc.DoRequest(req)
	if err != nil {
		return nil, fmt.Errorf("upstream: song %d: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream: song %d: status %d", id, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, err
	}
	return parseSong(strings.TrimSpace(string(body)))
}

func parseSong(s string) (*dom.Song, error) {
	if s == "" || strings.HasPrefix(s, "-") {
		return nil, dom.ErrNotFound
	}
	r, err := codec.DecodeRecord(s, codec.SongSep)
	if err != nil {
		return nil, fmt.Errorf("upstream: song record: %w", err)
	}
	song := &dom.Song{
		ID:       r.Int(1, 0),
		Name:     r[2],
		AuthorID: r.Int(3, 0),
		Author:   r[4],
		Source:   dom.SongSourceBoomlings,
	}
	if song.ID == 0 {
		return nil, fmt.Errorf("upstream: song record without id")
	}
	if v, err := strconv.ParseFloat(r[5], 64); err == nil {
		song.Size = v
	}
	if yt := r[7]; yt != "" {
		song.AuthorYoutube = &yt
	}
	if song.DownloadURL, err = url.QueryUnescape(r[10]); err != nil {
		return nil, fmt.Errorf("upstream: song url: %w", err)
	}
	return song, nil
}
