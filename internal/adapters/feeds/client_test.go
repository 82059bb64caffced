package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCVEClient_FetchVulnerabilities(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"vulnerabilities":[
		{"cve":{"id":"CVE-1","descriptions":[{"lang":"en","value":"first"}],"metrics":{"cvssMetricV2":[{"baseSeverity":"HIGH","cvssData":{"baseScore":7.5}}]}}},
		{"cve":{"id":"CVE-2"}}
	]}`)

	recs, err := NewCVEClient(srv.URL, srv.Client()).FetchVulnerabilities(context.Background())

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "first", recs[0].Description)
	assert.Equal(t, 7.5, recs[0].Score)
	assert.Equal(t, "UNKNOWN", recs[1].Severity)
}

func TestCVEClient_MissingArray(t *testing.T) {
	for _, body := range []string{`{}`, `{"vulnerabilities":null}`, `{"vulnerabilities":{}}`} {
		srv := serve(t, http.StatusOK, body)

		_, err := NewCVEClient(srv.URL, srv.Client()).FetchVulnerabilities(context.Background())

		assert.ErrorIs(t, err, ErrUnexpectedShape, body)
		assert.EqualError(t, err, "Unexpected response shape: missing vulnerabilities[]", body)
	}
}

func TestCVEClient_NonOKStatus(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, "maintenance")

	_, err := NewCVEClient(srv.URL, srv.Client()).FetchVulnerabilities(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.EqualError(t, err, "Fetch failed (503): maintenance")
}

func TestDeviceClient_FetchDevices(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"value":[
		{"id":"d1","cveId":"CVE-1","machineId":"M1","fixingKbId":null,"productName":"openssl","productVendor":"openssl","productVersion":"1.0.2","severity":"High"},
		{"id":"d2","cveId":"CVE-1","machineId":"M2","fixingKbId":"KB1","productName":"openssl","productVendor":"openssl","productVersion":"1.0.2","severity":"High"}
	]}`)

	recs, err := NewDeviceClient(srv.URL, srv.Client()).FetchDevices(context.Background())

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "CVE-1", recs[0].VulnerabilityID)
	assert.Equal(t, "M1", recs[0].MachineID)
	assert.Empty(t, recs[0].FixingKBID)
	assert.Equal(t, "KB1", recs[1].FixingKBID)
	assert.Equal(t, "openssl", recs[1].Product.Vendor)
}

func TestDeviceClient_MissingArray(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"items":[]}`)

	_, err := NewDeviceClient(srv.URL, srv.Client()).FetchDevices(context.Background())

	assert.EqualError(t, err, "Unexpected response shape: missing value[]")
}

func TestDeviceClient_InvalidJSON(t *testing.T) {
	srv := serve(t, http.StatusOK, `not json`)

	_, err := NewDeviceClient(srv.URL, srv.Client()).FetchDevices(context.Background())

	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestDeviceClient_EmptyArray(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"value":[]}`)

	recs, err := NewDeviceClient(srv.URL, srv.Client()).FetchDevices(context.Background())

	require.NoError(t, err)
	assert.Empty(t, recs)
}
