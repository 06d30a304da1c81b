package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmugisha/amali/core/student"
	"github.com/tmugisha/amali/tests"
)

func Test_studentApi_login(t *testing.T) {
	app := setup(t)

	// a returning student
	testutil.CreateStudent(t, stdRepo, "s01", "Jean Mutombo", "", false)

	tests := []httpTest{
		{
			name: "first access registers", method: http.MethodPost, path: "/v1/students/login",
			body:     marshalObj(t, student.NewStudent{StudentID: "S42", FullName: "Ada Student"}),
			wantCode: http.StatusOK,
		},
		{
			name: "revisit with matching name", method: http.MethodPost, path: "/v1/students/login",
			body:     marshalObj(t, student.NewStudent{StudentID: "s01", FullName: "Jean Mutombo"}),
			wantCode: http.StatusOK,
		},
		{
			name: "revisit with mismatched name", method: http.MethodPost, path: "/v1/students/login",
			body:     marshalObj(t, student.NewStudent{StudentID: "s01", FullName: "Someone Else"}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"full_name": "full name does not match this student id"}),
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/students/login",
			body:     marshalObj(t, student.NewStudent{}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{
				"student_id": "this field is required",
				"full_name":  "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_loginReturnsProfile(t *testing.T) {
	app := setup(t)

	body := marshalObj(t, student.NewStudent{StudentID: " S42 ", FullName: "Ada Student", Email: "ADA@example.com"})
	req, rec := newRequest(http.MethodPost, "/v1/students/login", body)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var std student.Student
	if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	assert.Equal(t, "s42", std.StudentID)
	assert.Equal(t, "Ada Student", std.FullName)
	assert.Equal(t, "ada@example.com", std.Email.String)
	assert.Equal(t, student.RoleStudent, std.Role)
	assert.False(t, std.HasSubmitted)
}

func Test_studentApi_queryAvailable(t *testing.T) {
	app := setup(t)

	testutil.CreateStudent(t, stdRepo, "s01", "Jean Mutombo", "", false)
	testutil.CreateStudent(t, stdRepo, "s02", "Grace Ilunga", "", true) // already submitted
	testutil.CreateStudent(t, stdRepo, "s03", "Patrick Kabongo", "", false)

	req, rec := newRequest(http.MethodGet, "/v1/students")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var names []string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	assert.ElementsMatch(t, []string{"Jean Mutombo", "Patrick Kabongo"}, names)
}
