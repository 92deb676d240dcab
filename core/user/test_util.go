package user

import (
	"context"
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service that sends password reset emails synchronously.
func NewServiceMock(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &serviceMock{
		service: service{
			repo:    repo,
			mailSvc: mailSvc,
			tokens: tokenGenerator{
				secret:  []byte(conf.SecretKey),
				timeout: conf.PasswordResetTimeoutDelta,
				now:     time.Now,
			},
		},
	}
}

func (svc *serviceMock) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return ErrNotFound
	}
	// run synchronously
	svc.sendPasswordResetMail(usr)
	return nil
}

