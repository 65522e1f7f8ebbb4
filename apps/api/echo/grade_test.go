package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mereles/agenda/core/grade"
)

func Test_gradeApi_averages(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)
	level := app.conf.DefaultAcademicLevel

	math := app.createSubject(t, level, "Mathematics")
	hist := app.createSubject(t, level, "History")
	app.createSubject(t, level, "Biology") // ungraded

	mustCreate := func(ng grade.NewGrade) {
		t.Helper()
		if _, err := app.gradeSvc.Create(testOwner, level, ng); err != nil {
			t.Fatalf("creating grade failed: %v", err)
		}
	}
	mustCreate(grade.NewGrade{SubjectID: math.ID, Title: "Exam", Score: 9, Weight: 2, GradedAt: "2025-02-01"})
	mustCreate(grade.NewGrade{SubjectID: math.ID, Title: "Quiz", Score: 8, Weight: 1, GradedAt: "2025-01-20"})
	mustCreate(grade.NewGrade{SubjectID: hist.ID, Title: "Essay", Score: 5, GradedAt: "2025-01-10"})

	req, rec := newAuthRequest(http.MethodGet, "/v1/grades/averages", token)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	var resp AveragesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if len(resp.Subjects) != 2 {
		t.Fatalf("len(Subjects) = %d, want graded subjects only", len(resp.Subjects))
	}
	if resp.Subjects[0].Subject.ID != math.ID || resp.Subjects[0].Average != 8.67 {
		t.Errorf("first subject = %q avg %v, want math 8.67", resp.Subjects[0].Subject.ID, resp.Subjects[0].Average)
	}
	if resp.Subjects[1].Average != 5 {
		t.Errorf("hist average = %v, want 5", resp.Subjects[1].Average)
	}
	if resp.Overall != 7.75 {
		t.Errorf("Overall = %v, want 7.75", resp.Overall)
	}
}

func Test_gradeApi_target(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/v1/grades/target",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "weight required", method: http.MethodPost, path: "/v1/grades/target",
			body:  []byte(`{"current_average": 7, "target_average": 5}`),
			token: token, wantCode: http.StatusBadRequest,
		},
		{
			name: "attainable", method: http.MethodPost, path: "/v1/grades/target",
			body:  []byte(`{"current_average": 7, "final_weight_percent": 50, "target_average": 5}`),
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, TargetResponse{RequiredScore: 3, Outcome: grade.OutcomeAttainable}),
		},
		{
			name: "unreachable", method: http.MethodPost, path: "/v1/grades/target",
			body:  []byte(`{"current_average": 2, "final_weight_percent": 50, "target_average": 9}`),
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, TargetResponse{RequiredScore: 16, Outcome: grade.OutcomeUnreachable}),
		},
		{
			name: "secured", method: http.MethodPost, path: "/v1/grades/target",
			body:  []byte(`{"current_average": 9, "final_weight_percent": 50, "target_average": 2}`),
			token: token, wantCode: http.StatusOK,
			wantData: marchallObj(t, TargetResponse{RequiredScore: -5, Outcome: grade.OutcomeSecured}),
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
		})
	}
}

func Test_gradeApi_update(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)
	level := app.conf.DefaultAcademicLevel
	sub := app.createSubject(t, level, "Mathematics")

	grd, err := app.gradeSvc.Create(testOwner, level, grade.NewGrade{
		SubjectID: sub.ID, Title: "Exam", Score: 7.5, Weight: 2, GradedAt: "2025-09-01",
	})
	if err != nil {
		t.Fatalf("creating grade failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodPut, "/v1/grades/"+grd.ID, token, []byte(`{"score": 0}`))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	var updated grade.Grade
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if updated.Score != 0 {
		t.Errorf("Score = %v, want explicit 0", updated.Score)
	}
	if updated.Title != "Exam" || updated.Weight != 2 {
		t.Errorf("fallbacks not applied: %+v", updated)
	}
}
