package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultDefinitionAPI = "https://api.dictionaryapi.dev/api/v2/entries/en"

// DefinitionClient fetches word definitions from the public
// dictionaryapi.dev service.
type DefinitionClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewDefinitionClient(httpClient *http.Client) *DefinitionClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &DefinitionClient{
		httpClient: httpClient,
		baseURL:    defaultDefinitionAPI,
	}
}

type definitionEntry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define returns the first definition of a word, or an empty string if
// the service has none.
func (that *DefinitionClient) Define(ctx context.Context, word string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s", that.baseURL, url.PathEscape(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("can't build definition request: %w", err)
	}

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("definition request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected definition response: status %d", resp.StatusCode)
	}

	var entries []definitionEntry
	if err = json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("can't decode definition response: %w", err)
	}

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, definition := range meaning.Definitions {
				if definition.Definition != "" {
					return definition.Definition, nil
				}
			}
		}
	}

	return "", nil
}
