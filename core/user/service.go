package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrInvalidResetLink   = errors.New("the password reset link is invalid or has expired")
)

type (
	// Repository is the user store. Any not found error must have core.ErrNotFound as its cause.
	Repository interface {
		Get(ctx context.Context, id string) (User, error)
		Find(ctx context.Context, match func(User) bool) (User, error)
		Update(ctx context.Context, id string, fn func(User) (User, error)) (User, error)
	}

	Service interface {
		// Authenticate checks the credentials and records the login.
		Authenticate(ctx context.Context, email, pwd string) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Update(ctx context.Context, id string, uu UpdateUser) (User, error)
		RequestPasswordReset(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, data ResetUserPassword) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		tokens  tokenGenerator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		tokens: tokenGenerator{
			secret:  []byte(conf.SecretKey),
			timeout: conf.PasswordResetTimeoutDelta,
			now:     time.Now,
		},
	}
}

func notFound(err error) error {
	if errors.Cause(err) == core.ErrNotFound {
		return ErrNotFound
	}
	return err
}

func (svc *service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return User{}, ErrAccountDeactivated
	}

	usr, err = svc.repo.Update(ctx, usr.ID, func(u User) (User, error) {
		u.LastLogin = time.Now().UTC()
		return u, nil
	})
	return usr, errors.Wrap(notFound(err), "setting lastLogin")
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	usr, err := svc.repo.Get(ctx, id)
	return usr, notFound(err)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	email = core.CleanString(email, true /* lower */)
	usr, err := svc.repo.Find(ctx, func(u User) bool { return u.Email == email })
	return usr, notFound(err)
}

func (svc *service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.Update(ctx, id, func(u User) (User, error) {
		u.Name = uu.Name
		u.UpdatedAt = time.Now().UTC()
		return u, nil
	})
	return usr, notFound(err)
}

func (svc *service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return ErrNotFound
	}
	go svc.sendPasswordResetMail(usr)
	return nil
}

func (svc *service) sendPasswordResetMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TemplateName: "password_reset",
		TemplateData: map[string]string{
			"Name":  usr.Name,
			"UID":   EncodeUID(usr),
			"Token": svc.tokens.makeToken(usr),
		},
	})
}

func (svc *service) ResetPassword(ctx context.Context, data ResetUserPassword) error {
	id, err := decodeUID(data.UID)
	if err != nil {
		return core.NewValidationError(ErrInvalidResetLink)
	}
	usr, err := svc.GetByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return core.NewValidationError(ErrInvalidResetLink)
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if err = svc.tokens.verifyToken(usr, data.Token); err != nil {
		return core.NewValidationError(ErrInvalidResetLink)
	}
	if err = checkPasswordSimilarity(data.Password, usr); err != nil {
		return err
	}

	_, err = svc.repo.Update(ctx, usr.ID, func(u User) (User, error) {
		if err := u.SetPassword(data.Password); err != nil {
			return User{}, err
		}
		u.UpdatedAt = time.Now().UTC()
		return u, nil
	})
	return errors.Wrap(notFound(err), "setting password")
}
