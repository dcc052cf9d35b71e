package remote

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

// AssetOrigin fetches static files from the origin the page was served from.
type AssetOrigin struct {
	baseURL string
	http    *http.Client
}

func NewAssetOrigin(baseURL string, httpClient *http.Client) *AssetOrigin {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &AssetOrigin{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (o *AssetOrigin) FetchAsset(ctx context.Context, p string) (domain.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+p, nil)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return domain.Asset{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Asset{}, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, p)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Asset{}, fmt.Errorf("origin status %d for %s", resp.StatusCode, p)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("read %s: %w", p, err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(path.Ext(p))
	}
	return domain.Asset{Path: p, ContentType: ct, Body: body}, nil
}
