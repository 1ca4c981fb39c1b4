package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/nanpeixoto/acervus/internal/domain"
)

const defaultTimeout = 30 * time.Second

// RendererGateway calls the external headless-rendering service that
// turns final markup into a binary document. Each call is bounded by
// its own timeout and runs outside any data-store transaction: a
// rendering failure is fatal to the single request only.
type RendererGateway struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

func NewRendererGateway(baseURL string, timeout time.Duration) *RendererGateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &RendererGateway{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		timeout: timeout,
	}
}

func (g *RendererGateway) Render(ctx context.Context, markup string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/render", bytes.NewBufferString(markup))
	if err != nil {
		return nil, domain.RenderError{Cause: errors.Wrap(err, "building render request")}
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, domain.RenderError{Cause: errors.Wrap(err, "calling renderer")}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.RenderError{Cause: errors.Errorf("renderer returned status %d", resp.StatusCode)}
	}

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.RenderError{Cause: errors.Wrap(err, "reading rendered document")}
	}
	return out, nil
}
