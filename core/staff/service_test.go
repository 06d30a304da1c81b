package staff_test

import (
	"context"
	"os"
	"testing"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/staff"
	inmemdb "github.com/tmugisha/amali/storage/database/inmem"
)

func TestMain(m *testing.M) {
	core.InitValidators()
	os.Exit(m.Run())
}

func setup(t *testing.T) *staff.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return staff.NewService(inmemdb.NewStaffRepository(db))
}

func TestCreateAppliesPasswordPolicy(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		pwd  string
	}{
		{"too short", "Sh0rt!"},
		{"whitespace", "open sesame1"},
		{"all numeric", "123456789"},
		{"similar to username", "proctor01x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, staff.NewStaff{
				Username: "proctor01",
				Email:    "proctor@school.test",
				Password: tt.pwd,
			})
			if err == nil {
				t.Fatalf("Create() accepted password %q", tt.pwd)
			}
			if !core.IsValidationError(err) {
				t.Errorf("error = %v; want a validation error", err)
			}
		})
	}
}

func TestCreateThenAuthenticate(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	stf, err := svc.Create(ctx, staff.NewStaff{
		Username: "Proctor01",
		Email:    "proctor@school.test",
		Password: "v3ryS@fePwd",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if stf.Username != "proctor01" {
		t.Errorf("username = %q; want cleaned lowered %q", stf.Username, "proctor01")
	}

	got, err := svc.Authenticate(ctx, "proctor01", "v3ryS@fePwd")
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if got.ID != stf.ID {
		t.Errorf("authenticated staff = %+v; want %+v", got, stf)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, staff.NewStaff{
		Username: "proctor01",
		Email:    "proctor@school.test",
		Password: "v3ryS@fePwd",
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	tests := []struct {
		name  string
		uname string
		pwd   string
	}{
		{"unknown username", "nosuchuser", "v3ryS@fePwd"},
		{"wrong password", "proctor01", "wr0ngPwd!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tt.uname, tt.pwd); err != staff.ErrAuthenticationFailed {
				t.Errorf("error = %v; want ErrAuthenticationFailed", err)
			}
		})
	}
}

func TestCreateIsUpsert(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, staff.NewStaff{
		Username: "proctor01",
		Email:    "proctor@school.test",
		Password: "v3ryS@fePwd",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	second, err := svc.Create(ctx, staff.NewStaff{
		Username: "proctor01",
		Email:    "proctor@school.test",
		Password: "an0therS@fePwd",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new staff user: %v != %v", second.ID, first.ID)
	}
	if !second.IsAdmin {
		t.Error("IsAdmin not updated")
	}
	if _, err := svc.Authenticate(ctx, "proctor01", "an0therS@fePwd"); err != nil {
		t.Errorf("Authenticate() with new password failed: %v", err)
	}
}
