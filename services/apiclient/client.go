package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core/assessment"
	"github.com/tmugisha/amali/core/student"
	"github.com/tmugisha/amali/core/submission"
)

// Client talks to the platform API on behalf of the student CLI. It is the
// concrete Uploader and assessment-config source the client core wires in.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ submission.Uploader = (*Client)(nil)

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Login registers/authenticates the student on the platform.
func (c *Client) Login(ctx context.Context, studentID, fullName string) (student.Student, error) {
	payload, err := json.Marshal(map[string]string{
		"student_id": studentID,
		"full_name":  fullName,
	})
	if err != nil {
		return student.Student{}, errors.Wrap(err, "encoding login payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/students/login", bytes.NewReader(payload))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	var std student.Student
	if err := c.do(req, &std); err != nil {
		return student.Student{}, err
	}
	return std, nil
}

// Students lists the names of students who have not submitted yet.
func (c *Client) Students(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/students", nil)
	if err != nil {
		return nil, errors.Wrap(err, "building students request")
	}

	var names []string
	if err := c.do(req, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Assessment fetches the assessment config (name, deadlines, grace).
func (c *Client) Assessment(ctx context.Context, id int) (assessment.Assessment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/assessments/"+strconv.Itoa(id), nil)
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "building assessment request")
	}

	var asm assessment.Assessment
	if err := c.do(req, &asm); err != nil {
		return assessment.Assessment{}, err
	}
	return asm, nil
}

// Upload sends one artifact as multipart form data with fields
// student_id, file_type, file and assessment_id.
func (c *Client) Upload(ctx context.Context, ur submission.UploadRequest) error {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	if err := w.WriteField("student_id", ur.StudentID); err != nil {
		return errors.Wrap(err, "writing student_id field")
	}
	if err := w.WriteField("file_type", ur.FileType); err != nil {
		return errors.Wrap(err, "writing file_type field")
	}
	if err := w.WriteField("assessment_id", strconv.Itoa(ur.AssessmentID)); err != nil {
		return errors.Wrap(err, "writing assessment_id field")
	}
	part, err := w.CreateFormFile("file", ur.FileName)
	if err != nil {
		return errors.Wrap(err, "creating file part")
	}
	if _, err := part.Write(ur.Data); err != nil {
		return errors.Wrap(err, "writing file part")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "finalizing multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/submissions", body)
	if err != nil {
		return errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, nil)
}

// do runs the request and decodes a JSON body into `out` on 2xx; non-2xx
// responses become *submission.UploadError carrying the server detail.
func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return &submission.UploadError{Detail: err.Error()}
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if res.StatusCode >= http.StatusBadRequest {
		return &submission.UploadError{Detail: decodeDetail(raw, res.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

// decodeDetail extracts a displayable message from an error body: either
// {"error": "..."} or a {field: message} map from a validation failure.
func decodeDetail(raw []byte, status int) string {
	var single struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &single); err == nil && single.Error != "" {
		return single.Error
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for field, msg := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	}

	return fmt.Sprintf("request failed with status %d", status)
}
