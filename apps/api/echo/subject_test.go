package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mereles/agenda/core/subject"
)

func Test_subjectApi_create(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/v1/subjects",
			body: []byte(`{"name": "Mathematics"}`), wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "name required", method: http.MethodPost, path: "/v1/subjects",
			body: []byte(`{"color": "#ff0000"}`), token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "bad color", method: http.MethodPost, path: "/v1/subjects",
			body: []byte(`{"name": "Mathematics", "color": "red"}`), token: token,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "created with default color", method: http.MethodPost, path: "/v1/subjects",
			body: []byte(`{"name": "Mathematics"}`), token: token, wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.server.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
			if tt.wantCode == http.StatusCreated {
				var sub subject.Subject
				if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
					t.Fatalf("unmarshalling response failed: %v", err)
				}
				if sub.ID == "" {
					t.Error("expected an assigned ID")
				}
				if sub.Color != subject.DefaultColor {
					t.Errorf("Color = %q, want default %q", sub.Color, subject.DefaultColor)
				}
				if sub.AcademicLevel != app.conf.DefaultAcademicLevel {
					t.Errorf("AcademicLevel = %q, want configured default", sub.AcademicLevel)
				}
			}
		})
	}
}

func Test_subjectApi_query_levelScoping(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)

	app.createSubject(t, app.conf.DefaultAcademicLevel, "Mathematics")
	other := app.createSubject(t, "2º ESO", "History")

	// default level sees only its own bucket
	req, rec := newAuthRequest(http.MethodGet, "/v1/subjects", token)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var subs []subject.Subject
	if err := json.Unmarshal(rec.Body.Bytes(), &subs); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if len(subs) != 1 || subs[0].Name != "Mathematics" {
		t.Errorf("default level subjects = %+v, want only Mathematics", subs)
	}

	// the header switches buckets
	req, rec = newAuthRequest(http.MethodGet, "/v1/subjects", token)
	req.Header.Set("X-Academic-Level", "2º ESO")
	app.server.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &subs); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != other.ID {
		t.Errorf("2º ESO subjects = %+v, want only History", subs)
	}
}

func Test_subjectApi_detail(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)
	strangerToken := app.token(t, "owner-2")

	sub := app.createSubject(t, app.conf.DefaultAcademicLevel, "Mathematics")

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/subjects/"+sub.ID, token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("another owner gets 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/subjects/"+sub.ID, strangerToken)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("code = %v, want 404", rec.Code)
		}
	})

	t.Run("update falls back to original fields", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/subjects/"+sub.ID, token, []byte(`{"teacher_name": "Ada Lovelace"}`))
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var updated subject.Subject
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if updated.Name != "Mathematics" || updated.TeacherName.String != "Ada Lovelace" {
			t.Errorf("updated = %+v", updated)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/subjects/"+sub.ID, token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %v, want 204", rec.Code)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/subjects/"+sub.ID, token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("code after delete = %v, want 404", rec.Code)
		}
	})
}
