package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"asset-approval-backend/internal/domain/paging"
	domain "asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"
	"asset-approval-backend/pkg/timefmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ActivationTemplate is the mail template sent to freshly registered users.
const (
	ActivationTemplate = "activation"
	ActivationSubject  = "Your New Account Has Been Successfully Created"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, template string, data map[string]any) error
}

type Usecase struct {
	repo     domain.Repository
	mailer   Mailer
	fmt      *timefmt.Formatter
	loginURL string
	log      *logrus.Entry
}

func NewUsecase(r domain.Repository, m Mailer, f *timefmt.Formatter, loginURL string) *Usecase {
	if f == nil {
		f = timefmt.New(timefmt.DefaultZone)
	}
	return &Usecase{
		repo:     r,
		mailer:   m,
		fmt:      f,
		loginURL: loginURL,
		log:      logrus.WithField("usecase", "user"),
	}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*DTO, error) {
	if !in.Role.Valid() {
		return nil, apperror.Validation("invalid role", map[string]string{"role": string(in.Role)})
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch _, err := u.repo.FindByEmail(ctx, email); {
	case err == nil:
		return nil, apperror.Conflict("email already registered", map[string]string{"email": email}).Wrap(domain.ErrEmailTaken)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	plain, err := domain.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hash, err := domain.HashPassword(plain)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	usr := &domain.User{
		ID:          id.New(),
		FirstName:   strings.TrimSpace(in.FirstName),
		Email:       email,
		Password:    hash,
		Role:        in.Role,
		SocialMedia: []byte("[]"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.repo.Create(ctx, usr); err != nil {
		return nil, err
	}

	if u.mailer != nil {
		data := map[string]any{
			"firstName":     usr.FirstName,
			"email":         usr.Email,
			"plainPassword": plain,
			"role":          usr.Role.Label(),
			"loginUrl":      u.loginURL,
		}
		// the account exists either way; a failed mail only needs a resend
		if err := u.mailer.Send(ctx, usr.Email, ActivationSubject, ActivationTemplate, data); err != nil {
			u.log.WithError(err).WithField("user_id", usr.ID).Warn("activation mail not sent")
		}
	}

	dto := u.toDTO(usr)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, page, size int, search string) (*ListResult, error) {
	q := domain.ListQuery{Params: paging.New(page, size), Search: search}
	var (
		rows  []domain.User
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rows, err = u.repo.List(gctx, q); return })
	g.Go(func() (err error) { total, err = u.repo.Count(gctx, q); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	items := make([]DTO, 0, len(rows))
	for i := range rows {
		items = append(items, u.toDTO(&rows[i]))
	}
	return &ListResult{Items: items, Meta: paging.NewMeta(q.Params, total)}, nil
}

func (u *Usecase) Profile(ctx context.Context, userID string) (*DTO, error) {
	usr, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	dto := u.toDTO(usr)
	return &dto, nil
}

func (u *Usecase) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*DTO, error) {
	usr, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	for i, s := range in.SocialMedia {
		if !s.Name.Valid() {
			return nil, apperror.Validation("invalid social media", map[string]any{"index": i, "name": s.Name})
		}
	}
	social := in.SocialMedia
	if social == nil {
		social = []SocialMedia{}
	}
	raw, err := json.Marshal(social)
	if err != nil {
		return nil, err
	}

	usr.FirstName = strings.TrimSpace(in.FirstName)
	usr.LastName = strings.TrimSpace(in.LastName)
	usr.Image = in.Image
	usr.SocialMedia = raw
	usr.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, usr); err != nil {
		return nil, err
	}
	dto := u.toDTO(usr)
	return &dto, nil
}

func (u *Usecase) Delete(ctx context.Context, userID string) error {
	if _, err := u.repo.FindByID(ctx, userID); err != nil {
		return notFound(err)
	}
	return u.repo.SoftDelete(ctx, userID)
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("user not found", nil).Wrap(err)
	}
	return err
}
