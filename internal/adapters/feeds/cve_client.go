package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// CVEClient fetches vulnerabilities from an NVD 2.0 shaped endpoint:
// {"vulnerabilities": [{"cve": {...}}]}.
type CVEClient struct {
	url    string
	client *http.Client
}

// NewCVEClient creates a CVE feed client. A nil client uses NewHTTPClient(0).
func NewCVEClient(url string, client *http.Client) *CVEClient {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &CVEClient{url: url, client: client}
}

// FetchVulnerabilities implements ports.VulnerabilityFeed.
func (c *CVEClient) FetchVulnerabilities(ctx context.Context) ([]domain.VulnerabilityRecord, error) {
	items, err := fetchArray(ctx, c.client, c.url, "vulnerabilities")
	if err != nil {
		return nil, err
	}

	records := make([]domain.VulnerabilityRecord, 0, len(items))
	for i, raw := range items {
		var entry CVEEntryDTO
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("%w: vulnerabilities[%d]: %v", ErrUnexpectedShape, i, err)
		}
		records = append(records, NormalizeCVE(entry))
	}
	return records, nil
}
