package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pp-governance/internal/assessment"
	"pp-governance/internal/catalog"
	"pp-governance/internal/config"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	ws, err := assessment.New(context.Background(), cat)
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	return NewRouter(&config.Config{SessionSecret: "test-secret"}, ws)
}

func do(t *testing.T, r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("health = %d %q", w.Code, w.Body.String())
	}
}

func TestNoActiveProject(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/active/summary", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	// the guard leaves a flash warning in the session cookie
	w = do(t, r, http.MethodGet, "/api/warnings", "", w.Result().Cookies()...)
	if w.Code != http.StatusOK {
		t.Fatalf("warnings status = %d", w.Code)
	}
	warnings, _ := decode(t, w)["warnings"].([]interface{})
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}
}

func TestAssessmentFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/projects", `{"name": "Contoso", "clientRef": "Contoso Ltd"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["activeProject"]; got != "Contoso" {
		t.Errorf("activeProject = %v", got)
	}

	w = do(t, r, http.MethodPost, "/api/projects", `{"name": "Contoso"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate create = %d, want 409", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/active/standards/dlp-policy/questions/dlp-tenant-policy", `{"value": false, "riskOwner": "CoE lead"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("answer = %d %s", w.Code, w.Body.String())
	}
	std := decode(t, w)["standard"].(map[string]interface{})
	if std["ragStatus"] != "red" {
		t.Errorf("standard rag = %v, want red", std["ragStatus"])
	}

	w = do(t, r, http.MethodPut, "/api/active/standards/dlp-policy/questions/dlp-connector-classification", `{"value": "4"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("numeric string answer = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPut, "/api/active/standards/dlp-policy/questions/dlp-connector-classification", `{"value": "lots"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric answer = %d, want 400", w.Code)
	}
	w = do(t, r, http.MethodPut, "/api/active/standards/dlp-policy/questions/dlp-connector-classification", `{"value": 9}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("out of range answer = %d, want 400", w.Code)
	}
	w = do(t, r, http.MethodPut, "/api/active/standards/dlp-policy/questions/nope", `{"value": true}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown question = %d, want 404", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/active/standards/dlp-policy/questions/dlp-policy-document",
		`{"documentData": {"fileName": "dlp.pdf", "mimeType": "application/pdf", "size": 1024}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("document = %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"fileName":"dlp.pdf"`) {
		t.Errorf("document not stored: %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/active/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("summary = %d", w.Code)
	}
	summary := decode(t, w)["summary"].(map[string]interface{})
	if summary["ragStatus"] != "red" {
		t.Errorf("overall rag = %v", summary["ragStatus"])
	}

	w = do(t, r, http.MethodGet, "/api/active/priorities", "")
	areas, _ := decode(t, w)["priorities"].([]interface{})
	if len(areas) == 0 {
		t.Error("expected at least one priority area")
	}

	w = do(t, r, http.MethodPost, "/api/active/standards/dlp-policy/rescore", "")
	if w.Code != http.StatusOK {
		t.Errorf("rescore = %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/projects/Contoso/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "contoso-assessment.json") {
		t.Errorf("content disposition = %q", cd)
	}
	exported := w.Body.String()

	w = do(t, r, http.MethodPost, "/api/projects/import?name=Contoso%20copy", exported)
	if w.Code != http.StatusCreated {
		t.Fatalf("import = %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/projects/import", `{"name": ""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad import = %d, want 400", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/projects", "")
	projects, _ := decode(t, w)["projects"].([]interface{})
	if len(projects) != 2 {
		t.Errorf("projects = %d, want 2", len(projects))
	}

	w = do(t, r, http.MethodPost, "/api/projects/Contoso/activate", "")
	if w.Code != http.StatusOK {
		t.Errorf("activate = %d", w.Code)
	}
	w = do(t, r, http.MethodDelete, "/api/projects/Contoso", "")
	if w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	w = do(t, r, http.MethodGet, "/api/active", "")
	if w.Code != http.StatusConflict {
		t.Errorf("active after deleting it = %d, want 409", w.Code)
	}
	w = do(t, r, http.MethodDelete, "/api/projects/Contoso", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}

func TestProjectNameWithSlash(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/projects", `{"name": "Contoso/2026"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("create = %d %s, want 400", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/projects", "")
	if projects, _ := decode(t, w)["projects"].([]interface{}); len(projects) != 0 {
		t.Errorf("projects = %v, want none", projects)
	}

	w = do(t, r, http.MethodPost, "/api/projects", `{"name": "Contoso 2026"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d", w.Code)
	}
	exported := do(t, r, http.MethodGet, "/api/projects/Contoso%202026/export", "").Body.String()
	w = do(t, r, http.MethodPost, "/api/projects/import?name=Contoso%2F2027", exported)
	if w.Code != http.StatusBadRequest {
		t.Errorf("import with slash = %d, want 400", w.Code)
	}

	// every accepted name is reachable through the :name routes
	w = do(t, r, http.MethodPost, "/api/projects/Contoso%202026/activate", "")
	if w.Code != http.StatusOK {
		t.Errorf("activate = %d", w.Code)
	}
	w = do(t, r, http.MethodDelete, "/api/projects/Contoso%202026", "")
	if w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
}

func TestClearDocument(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/projects", `{"name": "Docs"}`)

	const path = "/api/active/standards/dlp-policy/questions/dlp-policy-document"
	w := do(t, r, http.MethodPut, path, `{"documentData": {"fileName": "dlp.pdf"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("attach = %d %s", w.Code, w.Body.String())
	}
	before := decode(t, w)["standard"].(map[string]interface{})["completion"].(float64)

	w = do(t, r, http.MethodPut, path, `{"documentData": null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("clear = %d %s", w.Code, w.Body.String())
	}
	std := decode(t, w)["standard"].(map[string]interface{})
	if after := std["completion"].(float64); after >= before {
		t.Errorf("completion %v -> %v, want a decrease", before, after)
	}
	if strings.Contains(w.Body.String(), "dlp.pdf") {
		t.Errorf("document still attached: %s", w.Body.String())
	}
}

func TestClientRoutesNeedDatabase(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/clients", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("clients without db = %d, want 404", w.Code)
	}
}
