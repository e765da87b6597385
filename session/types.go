package session

import (
	"strings"

	"github.com/tbxark/docform/form"
	"github.com/tbxark/docform/types"
)

// Keyboard is a reply keyboard, one button label per row.
type Keyboard []string

// Artifact is a rendered document ready to be sent.
type Artifact struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
}

// Reply is one outgoing message. A nil Keyboard leaves the client's keyboard as is.
type Reply struct {
	Text     string    `json:"text,omitempty"`
	Keyboard Keyboard  `json:"keyboard,omitempty"`
	Document *Artifact `json:"document,omitempty"`
}

type Request struct {
	UserInput string `json:"user_input"`
}

type Response struct {
	Replies   []Reply           `json:"replies"`
	Outcome   form.Outcome      `json:"outcome,omitempty"`
	Lifecycle types.Lifecycle   `json:"lifecycle,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Text joins the text of every reply, one per line.
func (r *Response) Text() string {
	parts := make([]string, 0, len(r.Replies))
	for _, reply := range r.Replies {
		if reply.Text != "" {
			parts = append(parts, reply.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Messages are the fixed texts the bot sends outside of field prompts. Done is a format
// string receiving the display name.
type Messages struct {
	Greeting     string `yaml:"greeting"`
	Cancelled    string `yaml:"cancelled"`
	NoSession    string `yaml:"no_session"`
	Done         string `yaml:"done"`
	RenderFailed string `yaml:"render_failed"`
	Failure      string `yaml:"failure"`
	StartButton  string `yaml:"start_button"`
	CancelButton string `yaml:"cancel_button"`
}

func DefaultMessages() Messages {
	return Messages{
		Greeting:     "Привіт! 👋\nЯ створюю рахунок на оплату за шаблоном Word.\nНатисни кнопку нижче, щоб почати або вийти.",
		Cancelled:    "✅ Скасовано. Ви можете почати знову, натиснувши 'Сформувати рахунок'.",
		NoSession:    "Натисніть 'Сформувати рахунок📋' або надішліть /form, щоб почати.",
		Done:         "✅ Готово! Документ створено:\n📄 %s",
		RenderFailed: "⚠️ Виникла помилка при створенні файлу.",
		Failure:      "⚠️ Сталася помилка. Спробуйте почати знову.",
		StartButton:  "Сформувати рахунок📋",
		CancelButton: "Скасувати🔸",
	}
}

// WithDefaults fills empty texts from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&m.Greeting, d.Greeting)
	fill(&m.Cancelled, d.Cancelled)
	fill(&m.NoSession, d.NoSession)
	fill(&m.Done, d.Done)
	fill(&m.RenderFailed, d.RenderFailed)
	fill(&m.Failure, d.Failure)
	fill(&m.StartButton, d.StartButton)
	fill(&m.CancelButton, d.CancelButton)
	return m
}

// MainKeyboard offers starting a form and cancelling.
func (m Messages) MainKeyboard() Keyboard {
	return Keyboard{m.StartButton, m.CancelButton}
}
