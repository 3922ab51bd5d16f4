package plants

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

// Client — клиент внешнего API распознавания растений.
// Сетевые ретраи здесь уместны: запрос идемпотентный и дорогой только
// для нас, а не для стора.
type Client struct {
	http   *retryablehttp.Client
	url    string
	apiKey string
	logger *log.Logger
}

type Config struct {
	URL    string
	APIKey string
}

// Ensure: Client implements domain.PlantAnalyzer
var _ domain.PlantAnalyzer = (*Client)(nil)

func NewClient(cfg Config, logger *log.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil // свои логи ниже
	return &Client{http: rc, url: cfg.URL, apiKey: cfg.APIKey, logger: logger}
}

type identifyRequest struct {
	Images []string `json:"images"` // base64
}

type identifyResponse struct {
	Suggestions []struct {
		PlantName    string  `json:"plant_name"`
		Probability  float64 `json:"probability"`
		PlantDetails struct {
			CommonNames []string `json:"common_names"`
			WikiDesc    struct {
				Value string `json:"value"`
			} `json:"wiki_description"`
		} `json:"plant_details"`
	} `json:"suggestions"`
}

// Identify отправляет фото на анализ и возвращает лучший вариант.
func (c *Client) Identify(ctx context.Context, image []byte) (domain.PlantIdentification, error) {
	const op = "plants.identify"

	body, err := json.Marshal(identifyRequest{
		Images: []string{base64.StdEncoding.EncodeToString(image)},
	})
	if err != nil {
		return domain.PlantIdentification{}, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.PlantIdentification{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("%s: request failed after %s: %v", op, time.Since(start), err)
		return domain.PlantIdentification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Printf("%s: status %d: %s", op, resp.StatusCode, b)
		return domain.PlantIdentification{}, fmt.Errorf("plant api: status %d", resp.StatusCode)
	}

	var out identifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PlantIdentification{}, fmt.Errorf("plant api: decode: %w", err)
	}
	if len(out.Suggestions) == 0 {
		return domain.PlantIdentification{}, domain.ErrNotFound
	}

	best := out.Suggestions[0]
	res := domain.PlantIdentification{
		ScientificName: best.PlantName,
		Confidence:     best.Probability,
		IdentifiedAt:   time.Now().UTC(),
	}
	if names := best.PlantDetails.CommonNames; len(names) > 0 {
		res.CommonName = names[0]
	}
	res.Summary = summary(res)

	c.logger.Printf("%s: ok in %s name=%q confidence=%.2f", op, time.Since(start), res.ScientificName, res.Confidence)
	return res, nil
}

func summary(p domain.PlantIdentification) string {
	name := p.CommonName
	if name == "" {
		name = p.ScientificName
	}
	return fmt.Sprintf("%s (%.0f%%)", name, p.Confidence*100)
}
