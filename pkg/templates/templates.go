package templates

import (
	"bytes"
	texttemplate "text/template"

	"github.com/Masterminds/sprig"

	"github.com/coolify-notifications/push-relay/pkg/events"
)

// NotificationTemplate renders the notification of an event kind that has no built-in message
type NotificationTemplate struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

type Template interface {
	FormatNotification(vars map[string]interface{}) (*events.Notification, error)
}

type template struct {
	title *texttemplate.Template
	body  *texttemplate.Template
}

func (tmpl template) FormatNotification(vars map[string]interface{}) (*events.Notification, error) {
	var title bytes.Buffer
	if err := tmpl.title.Execute(&title, vars); err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := tmpl.body.Execute(&body, vars); err != nil {
		return nil, err
	}
	return &events.Notification{Title: title.String(), Body: body.String()}, nil
}

func funcMap() texttemplate.FuncMap {
	f := sprig.TxtFuncMap()
	delete(f, "env")
	delete(f, "expandenv")
	f["str"] = events.Stringify
	return f
}

func NewTemplate(name string, nt NotificationTemplate) (*template, error) {
	f := funcMap()
	title, err := texttemplate.New(name).Funcs(f).Parse(nt.Title)
	if err != nil {
		return nil, err
	}
	body, err := texttemplate.New(name).Funcs(f).Parse(nt.Body)
	if err != nil {
		return nil, err
	}
	return &template{title: title, body: body}, nil
}
