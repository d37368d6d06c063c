package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/service"
	"github.com/mmynk/stockroom/internal/storage/sqlite"
	"github.com/mmynk/stockroom/internal/views"
)

// newTestServer spins up the full router over a fresh SQLite store with
// sequential IDs, so created entities land at id-1, id-2, ...
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "api.db"), nil)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	n := 0
	svc := service.New(store, nil, &views.Recorder{},
		service.WithClock(func() time.Time {
			return time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
		}),
		service.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)

	srv := httptest.NewServer(New(svc).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCreateItemEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{
		"name":        "Webcam",
		"description": "1080p USB webcam",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var item models.Item
	decodeInto(t, resp, &item)
	if item.ID != "id-1" || item.TotalQuantity != 1 {
		t.Errorf("unexpected item: %+v", item)
	}

	t.Run("missing name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"description": "x"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("bad image url", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{
			"name": "Monitor", "imageUrl": "not a url",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"name": "WEBCAM"})
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", resp.StatusCode)
		}
		var body map[string]string
		decodeInto(t, resp, &body)
		if body["error"] == "" {
			t.Error("conflict response carries no error message")
		}
	})
}

func TestItemLifecycleEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"name": "Laptop"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}

	t.Run("patch", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, srv.URL+"/items/id-1", map[string]string{
			"description": "Work laptop",
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("add units", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/items/id-1/units", map[string]any{
			"quantity":   2,
			"billNumber": "INV-001",
			"billDate":   "2026-07-01T00:00:00Z",
			"company":    "Acme",
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("add units rejects zero quantity", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/items/id-1/units", map[string]any{
			"quantity": 0, "billNumber": "INV-001",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("update unit rejects unknown status", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/items/id-1/units/id-2", map[string]string{
			"availabilityStatus": "Broken",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("delete unit", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, srv.URL+"/items/id-1/units/id-2", nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("delete item", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, srv.URL+"/items/id-1", nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
		resp = doJSON(t, http.MethodDelete, srv.URL+"/items/id-1", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 on second delete, got %d", resp.StatusCode)
		}
	})
}

func TestAllotEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"name": "Laptop"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}

	t.Run("invalid phone", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/units/id-2/allot", map[string]string{
			"personId": "EMP-042", "name": "Priya", "phone": "12345",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/units/ghost/allot", map[string]string{
			"personId": "EMP-042", "name": "Priya", "phone": "5551234567",
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("allot and unallot", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/units/id-2/allot", map[string]string{
			"personId": "EMP-042", "name": "Priya", "phone": "5551234567",
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("allot failed: %d", resp.StatusCode)
		}

		snapResp, err := http.Get(srv.URL + "/snapshot")
		if err != nil {
			t.Fatalf("GET /snapshot: %v", err)
		}
		defer snapResp.Body.Close()
		var snap models.Snapshot
		decodeInto(t, snapResp, &snap)
		si := snap.Items[0].SubItems[0]
		if si.Status != models.StatusInUse || si.AssignedTo == nil {
			t.Errorf("snapshot does not reflect the allotment: %+v", si)
		}

		resp = doJSON(t, http.MethodPost, srv.URL+"/units/id-2/unallot", nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("unallot failed: %d", resp.StatusCode)
		}
	})
}

func TestBillAndUserEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"name": "Laptop"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/items/id-1/units", map[string]any{
		"quantity": 1, "billNumber": "INV-001", "billDate": "2026-07-01T00:00:00Z", "company": "Acme",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("add units failed: %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/units/id-2/allot", map[string]string{
		"personId": "EMP-042", "name": "Priya", "phone": "5551234567",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("allot failed: %d", resp.StatusCode)
	}

	t.Run("rename bill", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/bills/INV-001", map[string]any{
			"billNumber": "INV-100", "billDate": "2026-07-01T00:00:00Z", "company": "Acme Corp",
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown bill", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/bills/INV-999", map[string]any{
			"billNumber": "INV-999",
		})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("update user", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/users/EMP-042", map[string]string{
			"name": "Priya S", "phone": "5559999999", "department": "Design",
		})
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
	})

	t.Run("update user rejects bad phone", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, srv.URL+"/users/EMP-042", map[string]string{
			"name": "Priya S", "phone": "nope",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/items", map[string]string{"name": "Laptop"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/items/id-1/units", map[string]any{
		"quantity": 2, "billNumber": "INV-001",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("add units failed: %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/units/id-2/discard", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("discard failed: %d", resp.StatusCode)
	}

	statsResp, err := http.Get(srv.URL + "/stats")
	if err != nil {
		t.Fatalf("GET /stats: %v", err)
	}
	defer statsResp.Body.Close()

	var body statsResponse
	decodeInto(t, statsResp, &body)
	if body.Counts.Total != 3 || body.Counts.Available != 2 || body.Counts.Discarded != 1 {
		t.Errorf("unexpected counts: %+v", body.Counts)
	}
	if len(body.Items) != 1 || body.Items[0].Name != "Laptop" {
		t.Errorf("unexpected per-item breakdown: %+v", body.Items)
	}
}
