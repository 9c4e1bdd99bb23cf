package templates

import (
	"fmt"

	"github.com/coolify-notifications/push-relay/pkg/events"
)

type Service interface {
	Has(name string) bool
	FormatNotification(name string, vars map[string]interface{}) (*events.Notification, error)
}

type service struct {
	templates map[string]Template
}

func NewService(templates map[string]NotificationTemplate) (*service, error) {
	svc := &service{templates: map[string]Template{}}
	for name, cfg := range templates {
		tmpl, err := NewTemplate(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("template '%s' is invalid: %w", name, err)
		}
		svc.templates[name] = tmpl
	}
	return svc, nil
}

func (s *service) Has(name string) bool {
	_, ok := s.templates[name]
	return ok
}

func (s *service) FormatNotification(name string, vars map[string]interface{}) (*events.Notification, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return nil, fmt.Errorf("template '%s' is not supported", name)
	}
	return tmpl.FormatNotification(vars)
}
