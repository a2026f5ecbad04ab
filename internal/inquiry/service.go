// Package inquiry runs the customer inquiry lifecycle: received inquiries
// are quoted, then completed or rejected.
package inquiry

import (
	"github.com/yanun0323/errors"

	"main/internal/fabric"
	"main/internal/model"
	"main/pkg/exception"
)

// Service is the inquiry store, keyed by inquiry identifier, plus the
// transition operations. Every transition validates the current state and
// republishes the inquiry through the store so listeners see each step.
type Service struct {
	*fabric.Store[string, model.Inquiry]
}

func NewService() *Service {
	return &Service{
		Store: fabric.NewStore(func(i model.Inquiry) string {
			return i.InquiryID
		}),
	}
}

// SendQuote attaches a price to a received inquiry and moves it to QUOTED.
func (s *Service) SendQuote(inquiryID string, price model.Price) error {
	i, err := s.get(inquiryID)
	if err != nil {
		return err
	}
	if i.State != model.InquiryReceived {
		return errors.Wrapf(exception.ErrInvalidTransition, "quote inquiry %s in state %s", inquiryID, i.State)
	}
	i.Price = price
	i.State = model.InquiryQuoted
	s.OnMessage(i)
	return nil
}

// Complete moves a quoted inquiry to DONE.
func (s *Service) Complete(inquiryID string) error {
	i, err := s.get(inquiryID)
	if err != nil {
		return err
	}
	if i.State != model.InquiryQuoted {
		return errors.Wrapf(exception.ErrInvalidTransition, "complete inquiry %s in state %s", inquiryID, i.State)
	}
	i.State = model.InquiryDone
	s.OnMessage(i)
	return nil
}

// Reject declines an inquiry that has not completed.
func (s *Service) Reject(inquiryID string) error {
	i, err := s.get(inquiryID)
	if err != nil {
		return err
	}
	if i.State == model.InquiryDone {
		return errors.Wrapf(exception.ErrInvalidTransition, "reject inquiry %s in state %s", inquiryID, i.State)
	}
	i.State = model.InquiryRejected
	s.OnMessage(i)
	return nil
}

func (s *Service) get(inquiryID string) (model.Inquiry, error) {
	i, err := s.Get(inquiryID)
	if err != nil {
		return model.Inquiry{}, errors.Wrapf(exception.ErrUnknownInquiry, "inquiry: %s", inquiryID)
	}
	return i, nil
}
