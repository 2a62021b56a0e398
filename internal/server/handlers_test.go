package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osteele/liquid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
)

func newTestServer(t *testing.T, fs afero.Fs) *Server {
	t.Helper()
	store := openTestStore(t)
	liquidEngine := liquid.NewEngine()
	reg := registry.New(registry.BaseGroup(liquidEngine), registry.ListMathGroup())
	resolver := resolve.New(reg, liquidEngine)
	return New(store, reg, resolver, nil, fs, 0)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndPing(t *testing.T) {
	srv := newTestServer(t, afero.NewMemMapFs())
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/ping", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusListsEndpoints(t *testing.T) {
	srv := newTestServer(t, afero.NewMemMapFs())
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, float64(0), body["session_count"])
	require.Len(t, body["endpoints"], len(Endpoints))
}

func TestReadComputeWriteFlow(t *testing.T) {
	fs := afero.NewMemMapFs()
	ifacePath := "iface.yaml"
	doc := "input:\n  type: fake\n  rows: 2\n  select: [x]\noutput:\n  type: local\n  filename: out.csv\ncompute:\n  - function: identity\n    field: y\n    row_args:\n      value: x\n"
	require.NoError(t, afero.WriteFile(fs, ifacePath, []byte(doc), 0o644))

	srv := newTestServer(t, fs)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/read_data", readDataRequest{InterfacePath: ifacePath})
	require.Equal(t, http.StatusOK, rec.Code)

	var readResp readDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &readResp))
	require.Equal(t, 2, readResp.Rows)
	require.NotEmpty(t, readResp.SessionID)

	rec = doJSON(t, router, http.MethodPost, "/api/compute", computeRequest{SessionID: readResp.SessionID, Mode: "all"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/write_data", writeDataRequest{SessionID: readResp.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)

	raw, err := afero.ReadFile(fs, "out.csv")
	require.NoError(t, err)
	require.Contains(t, string(raw), "x-0")

	rec = doJSON(t, router, http.MethodGet, "/api/interface/read?session_id="+readResp.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReadDataUnknownInterfaceFails(t *testing.T) {
	srv := newTestServer(t, afero.NewMemMapFs())
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/read_data", readDataRequest{InterfacePath: "missing.yaml"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputeUnknownSessionFails(t *testing.T) {
	srv := newTestServer(t, afero.NewMemMapFs())
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/compute", computeRequest{SessionID: "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
