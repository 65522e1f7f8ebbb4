package echoapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/exam"
	emailsvc "github.com/mereles/agenda/services/email"
)

func examDate(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format(core.DateLayout)
}

func Test_examApi_upcoming(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)
	level := app.conf.DefaultAcademicLevel
	sub := app.createSubject(t, level, "Mathematics")

	mustCreate := func(ne exam.NewExam) {
		t.Helper()
		if _, err := app.examSvc.Create(testOwner, level, ne); err != nil {
			t.Fatalf("creating exam failed: %v", err)
		}
	}
	mustCreate(exam.NewExam{SubjectID: sub.ID, Title: "Past", ExamDate: examDate(-7)})
	mustCreate(exam.NewExam{SubjectID: sub.ID, Title: "Later", ExamDate: examDate(20)})
	mustCreate(exam.NewExam{SubjectID: sub.ID, Title: "Soon", ExamDate: examDate(3)})

	req, rec := newAuthRequest(http.MethodGet, "/v1/exams/upcoming", token)
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	var exams []exam.Exam
	if err := json.Unmarshal(rec.Body.Bytes(), &exams); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if len(exams) != 2 {
		t.Fatalf("len = %d, want past exams filtered out", len(exams))
	}
	if exams[0].Title != "Soon" || exams[1].Title != "Later" {
		t.Errorf("order = %q, %q; want soonest first", exams[0].Title, exams[1].Title)
	}
}

func Test_examApi_remind(t *testing.T) {
	app := setup(t)
	token := app.token(t, testOwner)
	level := app.conf.DefaultAcademicLevel
	sub := app.createSubject(t, level, "Mathematics")

	if _, err := app.examSvc.Create(testOwner, level, exam.NewExam{
		SubjectID: sub.ID, Title: "Algebra final", ExamDate: examDate(3),
	}); err != nil {
		t.Fatalf("creating exam failed: %v", err)
	}
	if _, err := app.examSvc.Create(testOwner, level, exam.NewExam{
		SubjectID: sub.ID, Title: "Too far away", ExamDate: examDate(30),
	}); err != nil {
		t.Fatalf("creating exam failed: %v", err)
	}

	t.Run("email required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/remind", token, []byte(`{}`))
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v, want 400", rec.Code)
		}
	})

	t.Run("digest covers the window only", func(t *testing.T) {
		sentBefore := len(emailsvc.SentMessages)

		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/remind", token,
			[]byte(`{"email": "student@test.test", "days": 7}`))
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}

		var resp RemindResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling response failed: %v", err)
		}
		if resp.Sent != 1 {
			t.Errorf("Sent = %d, want 1", resp.Sent)
		}

		if len(emailsvc.SentMessages) != sentBefore+1 {
			t.Fatalf("len(SentMessages) = %d, want %d", len(emailsvc.SentMessages), sentBefore+1)
		}
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		if msg.To[0].Address != "student@test.test" {
			t.Errorf("To = %q, want student@test.test", msg.To[0].Address)
		}
		if !strings.Contains(msg.BodyStr, "Algebra final") || strings.Contains(msg.BodyStr, "Too far away") {
			t.Errorf("unexpected digest body: %s", msg.BodyStr)
		}
	})
}
