package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmugisha/amali/core/submission"
	"github.com/tmugisha/amali/tests"
)

var notebook = []byte(`{"cells": [], "nbformat": 4}`)

func uploadFields(studentID, fileType string) map[string]string {
	return map[string]string{
		"student_id":    studentID,
		"file_type":     fileType,
		"assessment_id": "1",
	}
}

func Test_submissionApi_create(t *testing.T) {
	app := setup(t)

	testutil.CreateStudent(t, stdRepo, "s42", "Ada Student", "ada@example.com", false)

	tests := []struct {
		name      string
		studentID string
		fileType  string
		filename  string
		content   []byte
		wantCode  int
		wantData  []byte
	}{
		{
			name: "notebook upload", studentID: "s42", fileType: "ipynb_textprocess",
			filename: "work.ipynb", content: notebook, wantCode: http.StatusCreated,
		},
		{
			name: "unknown student", studentID: "nobody", fileType: "ipynb_textprocess",
			filename: "work.ipynb", content: notebook, wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "student not found"}),
		},
		{
			name: "invalid file type", studentID: "s42", fileType: "pdf_report",
			filename: "work.pdf", content: notebook, wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"file_type": "invalid file_type, must be 'ipynb*' or 'embeddings'"}),
		},
		{
			name: "notebook with wrong extension", studentID: "s42", fileType: "ipynb_classifier",
			filename: "work.txt", content: notebook, wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"file": "file must be a .ipynb notebook"}),
		},
		{
			name: "embeddings with wrong extension", studentID: "s42", fileType: "embeddings",
			filename: "embeddings.ipynb", content: []byte("0.1 0.2"), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"file": "embedding file must be a .txt file"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUploadRequest(t, "/v1/submissions", tt.filename, tt.content, uploadFields(tt.studentID, tt.fileType))
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: tt.wantCode, wantData: tt.wantData}, rec)
		})
	}
}

func Test_submissionApi_createRecordsMetadata(t *testing.T) {
	app := setup(t)

	testutil.CreateStudent(t, stdRepo, "s42", "Ada Student", "", false)

	req, rec := newUploadRequest(t, "/v1/submissions", "My Work.ipynb", notebook, uploadFields("s42", "ipynb_textprocess"))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var record submission.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	assert.Equal(t, "ipynb_textprocess", record.FileType)
	assert.Equal(t, "My Work.ipynb", record.OriginalFilename)
	assert.Equal(t, "textprocess_s42_Ada_Student.ipynb", record.StoredFilename)
	assert.Equal(t, int64(len(notebook)), record.SizeBytes)
}

func Test_submissionApi_finalUploadClosesSubmission(t *testing.T) {
	app := setup(t)

	std := testutil.CreateStudent(t, stdRepo, "s42", "Ada Student", "", false)

	req, rec := newUploadRequest(t, "/v1/submissions", "embeddings.txt", []byte("0.1 0.2 0.3"), uploadFields("s42", "embeddings"))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	got, err := stdRepo.GetStudentByStudentID(context.Background(), std.StudentID)
	if err != nil {
		t.Fatalf("GetStudentByStudentID() failed: %v", err)
	}
	assert.True(t, got.HasSubmitted)

	// any further upload is rejected
	req, rec = newUploadRequest(t, "/v1/submissions", "work.ipynb", notebook, uploadFields("s42", "ipynb_textprocess"))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, string(marshalObj(t, httpErr{Error: "student has already submitted their final work"})), rec.Body.String())
}

func Test_submissionApi_query(t *testing.T) {
	app := setup(t)

	testutil.CreateStudent(t, stdRepo, "s42", "Ada Student", "", false)
	staff := testutil.CreateStaff(t, stfRepo, "proctor01", "proctor@school.test", "v3ryS@fePwd", false)
	token := getToken(t, staff)

	req, rec := newUploadRequest(t, "/v1/submissions", "work.ipynb", notebook, uploadFields("s42", "ipynb_textprocess"))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/v1/submissions?assessment_id=1",
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken),
		},
		{
			name: "missing assessment_id", method: http.MethodGet, path: "/v1/submissions", token: token,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"assessment_id": "a valid assessment_id is required"}),
		},
		{
			name: "no submissions yet", method: http.MethodGet, path: "/v1/submissions?assessment_id=99", token: token,
			wantCode: http.StatusOK, wantData: marshalList(t),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// listing returns the received artifact
	req, rec = newAuthRequest(http.MethodGet, "/v1/submissions?assessment_id=1", token)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	var records []submission.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if assert.Len(t, records, 1) {
		assert.Equal(t, "ipynb_textprocess", records[0].FileType)
	}
}
