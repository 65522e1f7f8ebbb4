package exam

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

var (
	// errors
	ErrNotFound = errors.New("exam not found")
)

type (
	Repository interface {
		CreateExam(e Exam) (Exam, error)
		QueryAllExams(ownerID, level string) ([]Exam, error)
		GetExamByID(id, ownerID string) (Exam, error)
		UpdateExam(e Exam) (Exam, error)
		DeleteExamsByID(ownerID string, ids ...string) error
	}

	Service struct {
		repo     Repository
		subjects subject.Repository
		mail     core.EmailService
		log      core.Logger
	}
)

func NewService(repo Repository, subjects subject.Repository, mailSvc core.EmailService, log core.Logger) *Service {
	return &Service{repo: repo, subjects: subjects, mail: mailSvc, log: log}
}

func (svc *Service) Create(ownerID, level string, ne NewExam) (Exam, error) {
	e := Exam{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		AcademicLevel: level,
		SubjectID:     ne.SubjectID,
		Title:         ne.Title,
		ExamDate:      ne.ExamDate,
		Location:      null.NewString(ne.Location, ne.Location != ""),
		Notes:         null.NewString(ne.Notes, ne.Notes != ""),
		CreatedAt:     time.Now().UTC(),
	}
	return svc.repo.CreateExam(e)
}

func (svc *Service) QueryAll(ownerID, level string) []Exam {
	exams, err := svc.repo.QueryAllExams(ownerID, level)
	if err != nil {
		svc.log.Error("querying exams", err)
		return []Exam{}
	}
	return exams
}

func (svc *Service) GetByID(id, ownerID string) (Exam, error) {
	return svc.repo.GetExamByID(id, ownerID)
}

func (svc *Service) Update(orig Exam, ue UpdateExam) (Exam, error) {
	e := orig
	e.SubjectID = ue.SubjectID
	e.Title = ue.Title
	e.ExamDate = ue.ExamDate
	e.Location = null.NewString(ue.Location, ue.Location != "")
	e.Notes = null.NewString(ue.Notes, ue.Notes != "")
	return svc.repo.UpdateExam(e)
}

func (svc *Service) Delete(ownerID string, ids ...string) error {
	return svc.repo.DeleteExamsByID(ownerID, ids...)
}

// Upcoming lists the owner's exams on/after today, soonest first.
func (svc *Service) Upcoming(ownerID, level string) []Exam {
	return Upcoming(svc.QueryAll(ownerID, level), core.TodayStr())
}

// SendReminder emails the owner a digest of exams due within the next `days`
// days. No email is sent when nothing is due.
func (svc *Service) SendReminder(ownerID, level string, to mail.Address, days int) int {
	today := core.TodayStr()
	horizon := time.Now().AddDate(0, 0, days).Format(core.DateLayout)

	var due []Exam
	for _, e := range Upcoming(svc.QueryAll(ownerID, level), today) {
		if e.ExamDate <= horizon {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return 0
	}

	subs, err := svc.subjects.QueryAllSubjects(ownerID, level)
	if err != nil {
		svc.log.Error("querying subjects for exam reminder", err)
		subs = nil
	}
	lookup := subject.Lookup(subs)

	var body strings.Builder
	fmt.Fprintf(&body, "You have %d upcoming exam(s):\n\n", len(due))
	for _, e := range due {
		label := e.Title
		if sub, ok := lookup[e.SubjectID]; ok {
			label = fmt.Sprintf("%s: %s", sub.Name, e.Title)
		}
		fmt.Fprintf(&body, "- %s on %s", label, e.ExamDate)
		if e.Location.String != "" {
			fmt.Fprintf(&body, " (%s)", e.Location.String)
		}
		body.WriteString("\n")
	}

	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{to},
		Subject: "Upcoming exams",
		BodyStr: body.String(),
	})
	return len(due)
}
