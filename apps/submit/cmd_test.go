package main

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/submission"
	"github.com/tmugisha/amali/core/window"
	"github.com/tmugisha/amali/services/apiclient"
	identitysvc "github.com/tmugisha/amali/services/identity"
	logsvc "github.com/tmugisha/amali/services/logger"
	filekv "github.com/tmugisha/amali/storage/kvstore/file"
)

// fakeAPI emulates the platform endpoints the CLI talks to.
func fakeAPI(t *testing.T, uploads *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/students/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			StudentID string `json:"student_id"`
			FullName  string `json:"full_name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.FullName != "Ada Student" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"full_name": "full name does not match this student id"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"student_id": body.StudentID,
			"full_name":  body.FullName,
			"role":       "student",
		})
	})
	mux.HandleFunc("/v1/students", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"Ada Student"})
	})
	mux.HandleFunc("/v1/assessments/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":               1,
			"name":             "NLP Practical Work",
			"start_time":       time.Now().UTC().Format(time.RFC3339),
			"end_time":         time.Now().UTC().Add(8 * time.Hour).Format(time.RFC3339),
			"grace_minutes":    10,
			"max_access_hours": 4,
		})
	})
	mux.HandleFunc("/v1/submissions", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(uploads, 1)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCLI(t *testing.T, baseURL string) *commandLine {
	t.Helper()

	kv, err := filekv.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("filekv.Open() failed: %v", err)
	}
	return &commandLine{
		conf:    core.Conf,
		kv:      kv,
		api:     apiclient.New(baseURL),
		idp:     identitysvc.NewProvider(kv),
		windows: window.NewStore(kv),
		logger:  logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", 0)),
	}
}

func TestMain(m *testing.M) {
	_ = os.Setenv("ENV", "TEST")
	core.LoadConfig()
	os.Exit(m.Run())
}

func Test_commandLine_help(t *testing.T) {
	cli := newTestCLI(t, "http://localhost:0")

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"lol"}},
		{"login without id", []string{"login", "-name", "Ada Student"}},
		{"submit without files", []string{"submit", "-textprocess", "work.ipynb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"submit"}, tt.args...)
			if err := cli.run(args); err != errHelp {
				t.Errorf("cli.run() error = %v, want errHelp", err)
			}
		})
	}
}

func Test_commandLine_loginAnchorsWindow(t *testing.T) {
	var uploads int32
	srv := fakeAPI(t, &uploads)
	cli := newTestCLI(t, srv.URL)

	before := time.Now().UTC()
	if err := cli.run([]string{"submit", "login", "-id", "s42", "-name", "Ada Student"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ident, ok := cli.idp.Current()
	if !ok {
		t.Fatal("no session after login")
	}
	if ident.UserID != "s42" {
		t.Errorf("identity = %+v", ident)
	}

	win, err := cli.windows.GetOrCreate(1, "s42", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetOrCreate() failed: %v", err)
	}
	if got := win.End.Sub(win.Start); got != window.Duration {
		t.Errorf("window length = %v; want %v", got, window.Duration)
	}
	if win.Start.Before(before.Truncate(time.Second)) {
		t.Errorf("window start = %v; want anchored at login (~%v)", win.Start, before)
	}

	// status works against the same window
	if err := cli.run([]string{"submit", "status"}); err != nil {
		t.Errorf("status failed: %v", err)
	}

	// logout clears the session
	if err := cli.run([]string{"submit", "logout"}); err != nil {
		t.Errorf("logout failed: %v", err)
	}
	if _, ok := cli.idp.Current(); ok {
		t.Error("session survived logout")
	}
}

func Test_commandLine_submitUploadsEverythingThenSignsOut(t *testing.T) {
	var uploads int32
	srv := fakeAPI(t, &uploads)
	cli := newTestCLI(t, srv.URL)

	if err := cli.run([]string{"submit", "login", "-id", "s42", "-name", "Ada Student"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	dir := t.TempDir()
	paths := map[string]string{
		"textprocess": filepath.Join(dir, "textprocess.ipynb"),
		"classifier":  filepath.Join(dir, "classifier.ipynb"),
		"embeddings":  filepath.Join(dir, "embeddings.txt"),
	}
	for _, p := range paths {
		if err := os.WriteFile(p, []byte("content"), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	err := cli.run([]string{
		"submit", "submit",
		"-textprocess", paths["textprocess"],
		"-classifier", paths["classifier"],
		"-embeddings", paths["embeddings"],
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if got := atomic.LoadInt32(&uploads); got != 3 {
		t.Errorf("uploads = %d; want 3", got)
	}
	if _, ok := cli.idp.Current(); ok {
		t.Error("session survived the scheduled logout")
	}
	if _, err := cli.kv.Get(submission.HasSubmittedKey(1, "s42")); err != nil {
		t.Errorf("submitted flag not recorded: %v", err)
	}
}
