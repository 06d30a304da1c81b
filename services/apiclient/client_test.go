package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core/submission"
	"github.com/tmugisha/amali/services/apiclient"
)

func TestUploadSendsMultipartFields(t *testing.T) {
	var got struct {
		studentID, fileType, assessmentID, filename, content string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() failed: %v", err)
		}
		got.studentID = r.FormValue("student_id")
		got.fileType = r.FormValue("file_type")
		got.assessmentID = r.FormValue("assessment_id")

		f, fh, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() failed: %v", err)
		}
		defer f.Close()
		raw, _ := io.ReadAll(f)
		got.filename = fh.Filename
		got.content = string(raw)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	err := client.Upload(context.Background(), submission.UploadRequest{
		StudentID:    "s42",
		FileType:     "ipynb_textprocess",
		FileName:     "work.ipynb",
		Data:         []byte(`{"cells": []}`),
		AssessmentID: 7,
	})
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	if got.studentID != "s42" || got.fileType != "ipynb_textprocess" || got.assessmentID != "7" {
		t.Errorf("form fields = %+v", got)
	}
	if got.filename != "work.ipynb" || got.content != `{"cells": []}` {
		t.Errorf("file part = %+v", got)
	}
}

func TestUploadErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:   "error body",
			status: http.StatusBadRequest,
			body:   `{"error": "student has already submitted their final work"}`,
			wantDetail: "student has already submitted their final work",
		},
		{
			name:   "field errors joined in order",
			status: http.StatusBadRequest,
			body:   `{"file_type": "invalid file_type", "file": "file must be a .ipynb notebook"}`,
			wantDetail: "file: file must be a .ipynb notebook; file_type: invalid file_type",
		},
		{
			name:       "unparseable body",
			status:     http.StatusBadGateway,
			body:       "<html>nope</html>",
			wantDetail: "request failed with status 502",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := apiclient.New(srv.URL)
			err := client.Upload(context.Background(), submission.UploadRequest{
				StudentID: "s42", FileType: "ipynb_textprocess", FileName: "work.ipynb", AssessmentID: 1,
			})
			if err == nil {
				t.Fatal("Upload() succeeded; want error")
			}

			var ue *submission.UploadError
			if !errors.As(err, &ue) {
				t.Fatalf("error = %T; want *submission.UploadError", err)
			}
			if ue.Detail != tt.wantDetail {
				t.Errorf("detail = %q; want %q", ue.Detail, tt.wantDetail)
			}
		})
	}
}

func TestAlreadySubmittedDetection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "student has already submitted their final work"}`))
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	err := client.Upload(context.Background(), submission.UploadRequest{
		StudentID: "s42", FileType: "embeddings", FileName: "embeddings.txt", AssessmentID: 1,
	})
	if !submission.IsAlreadySubmitted(err) {
		t.Errorf("IsAlreadySubmitted() = false for %v", err)
	}
}

func TestLoginDecodesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/students/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"student_id": body["student_id"],
			"full_name":  body["full_name"],
			"role":       "student",
		})
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL)
	std, err := client.Login(context.Background(), "s42", "Ada Student")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if std.StudentID != "s42" || std.FullName != "Ada Student" {
		t.Errorf("student = %+v", std)
	}
}
