package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// DeviceClient fetches device exposures from an endpoint answering
// {"value": [{...}]}.
type DeviceClient struct {
	url    string
	client *http.Client
}

// NewDeviceClient creates a device feed client. A nil client uses NewHTTPClient(0).
func NewDeviceClient(url string, client *http.Client) *DeviceClient {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &DeviceClient{url: url, client: client}
}

// FetchDevices implements ports.DeviceFeed.
func (c *DeviceClient) FetchDevices(ctx context.Context) ([]domain.DeviceRecord, error) {
	items, err := fetchArray(ctx, c.client, c.url, "value")
	if err != nil {
		return nil, err
	}

	records := make([]domain.DeviceRecord, 0, len(items))
	for i, raw := range items {
		var dto DeviceDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, fmt.Errorf("%w: value[%d]: %v", ErrUnexpectedShape, i, err)
		}
		records = append(records, NormalizeDevice(dto))
	}
	return records, nil
}
