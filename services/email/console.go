package emailsvc

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/mereles/agenda/core"
)

var (
	SentMessages = make([]core.EmailMessage, 0) // inspected by tests
	mu           sync.Mutex
)

type consoleService struct {
	subjPrefix    string
	disableOutput bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.EmailService {
	return &consoleService{
		subjPrefix: "[" + conf.AppName + "] ",
	}
}

// NewConsoleServiceMock records messages without printing them.
func NewConsoleServiceMock(conf *core.Config) core.EmailService {
	return &consoleService{
		subjPrefix:    "[" + conf.AppName + "] ",
		disableOutput: true,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			svc.send(*msg)
		}
	}
}

func (svc consoleService) send(msg core.EmailMessage) {
	mu.Lock()
	SentMessages = append(SentMessages, msg)
	mu.Unlock()

	if svc.disableOutput {
		return
	}
	tos := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		tos = append(tos, to.String())
	}
	log.Println(strings.Repeat("-", 70))
	log.Printf("To: %s", strings.Join(tos, ", "))
	log.Printf("Subject: %s", svc.subjPrefix+msg.Subject)
	fmt.Println(msg.BodyStr)
	log.Println(strings.Repeat("-", 70))
}
