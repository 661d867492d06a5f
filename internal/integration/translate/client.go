package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/wildpine/wildpine/internal/config"
	ierr "github.com/wildpine/wildpine/internal/errors"
	"github.com/wildpine/wildpine/internal/httpclient"
	"github.com/wildpine/wildpine/internal/logger"
)

// Client calls a DeepL-compatible machine translation API
type Client struct {
	http    httpclient.Client
	baseURL string
	apiKey  string
	enabled bool
	logger  *logger.Logger
}

func NewClient(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) *Client {
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(cfg.Translation.BaseURL, "/"),
		apiKey:  cfg.Translation.APIKey,
		enabled: cfg.Translation.Enabled && cfg.Translation.APIKey != "",
		logger:  logger,
	}
}

// IsEnabled returns whether machine translation is configured
func (c *Client) IsEnabled() bool {
	return c.enabled
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate translates the given texts into the target locale, preserving
// order. Text count in equals text count out.
func (c *Client) Translate(ctx context.Context, texts []string, targetLocale string) ([]string, error) {
	if !c.enabled {
		return nil, ierr.NewError("translation is not configured").
			WithHint("Machine translation is not configured").
			Mark(ierr.ErrInvalidOperation)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	form := url.Values{}
	for _, t := range texts {
		form.Add("text", t)
	}
	form.Set("target_lang", strings.ToUpper(targetLocale))

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/v2/translate",
		Headers: map[string]string{
			"Authorization": "DeepL-Auth-Key " + c.apiKey,
			"Content-Type":  "application/x-www-form-urlencoded",
		},
		Body: []byte(form.Encode()),
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewError("translation request failed").
			WithHintf("Translation service returned status %d", resp.StatusCode).
			Mark(ierr.ErrHTTPClient)
	}

	var parsed translateResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected translation service response").
			Mark(ierr.ErrHTTPClient)
	}
	if len(parsed.Translations) != len(texts) {
		return nil, ierr.NewError("translation count mismatch").
			WithHint("Translation service returned an incomplete result").
			Mark(ierr.ErrHTTPClient)
	}

	out := make([]string, len(parsed.Translations))
	for i, t := range parsed.Translations {
		out[i] = t.Text
	}
	return out, nil
}
