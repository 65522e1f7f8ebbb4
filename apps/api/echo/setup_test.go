package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/exam"
	"github.com/mereles/agenda/core/grade"
	"github.com/mereles/agenda/core/subject"
	"github.com/mereles/agenda/core/task"
	"github.com/mereles/agenda/core/timetable"
	emailsvc "github.com/mereles/agenda/services/email"
	logsvc "github.com/mereles/agenda/services/logger"
	inmemdb "github.com/mereles/agenda/storage/database/inmem"
)

const testOwner = "owner-1"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	server Server
	conf   *core.Config

	subjectSvc   *subject.Service
	timetableSvc *timetable.Service
	gradeSvc     *grade.Service
	taskSvc      *task.Service
	examSvc      *exam.Service
}

func setup(t *testing.T) *testApp {
	conf := core.NewConfig()
	conf.TestMode = true
	conf.Debug = false

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	subRepo := inmemdb.NewSubjectRepository(db)

	app := &testApp{
		conf:         conf,
		subjectSvc:   subject.NewService(subRepo, logger),
		timetableSvc: timetable.NewService(inmemdb.NewEntryRepository(db), subRepo, logger),
		gradeSvc:     grade.NewService(inmemdb.NewGradeRepository(db), subRepo, logger),
		taskSvc:      task.NewService(inmemdb.NewTaskRepository(db), subRepo, logger),
		examSvc:      exam.NewService(inmemdb.NewExamRepository(db), subRepo, mailSvc, logger),
	}
	app.server = NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		SubjectSvc:   app.subjectSvc,
		TimetableSvc: app.timetableSvc,
		GradeSvc:     app.gradeSvc,
		TaskSvc:      app.taskSvc,
		ExamSvc:      app.examSvc,
	})
	return app
}

func (app *testApp) token(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := GenerateToken(app.conf, GetOwnerClaims(app.conf, ownerID))
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	return token
}

func (app *testApp) createSubject(t *testing.T, level, name string) subject.Subject {
	t.Helper()
	sub, err := app.subjectSvc.Create(testOwner, level, subject.NewSubject{Name: name})
	if err != nil {
		t.Fatalf("creating subject failed: %v", err)
	}
	return sub
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	level    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
