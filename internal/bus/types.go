package bus

import (
	"errors"

	"github.com/KirkDiggler/lectern/internal/models"
)

type PublishInput struct {
	Code  string
	Event *models.Event
}

type PublishOutput struct {
	Seq int64
}

type SubscribeInput struct {
	Code    string
	Handler Handler
}

func (i *PublishInput) validate() error {
	if i == nil || i.Event == nil {
		return errors.New("input and event cannot be nil")
	}
	if i.Code == "" {
		return errors.New("session code cannot be empty")
	}
	return nil
}

func (i *SubscribeInput) validate() error {
	if i == nil || i.Handler == nil {
		return errors.New("input and handler cannot be nil")
	}
	if i.Code == "" {
		return errors.New("session code cannot be empty")
	}
	return nil
}
