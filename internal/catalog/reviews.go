package catalog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
	"github.com/nexla-ia/sistemaclinicaandre/internal/repository"
)

const (
	maxIdentifierLen = 128
	maxCommentLen    = 2000
)

// ReviewInput — отзыв клиента. CustomerIdentifier выдаётся клиенту заранее
// (токен на устройстве) и ограничивает один отзыв на токен.
type ReviewInput struct {
	CustomerName       string
	CustomerIdentifier string
	Rating             int
	Comment            string
}

type Reviews struct {
	repo        repository.ReviewRepository
	autoApprove bool
	log         *zap.Logger
}

func NewReviews(repo repository.ReviewRepository, autoApprove bool, log *zap.Logger) *Reviews {
	return &Reviews{repo: repo, autoApprove: autoApprove, log: log.Named("catalog.reviews")}
}

func (r *Reviews) Create(ctx context.Context, in ReviewInput) (*model.Review, error) {
	const op = "catalog.CreateReview"

	rv := &model.Review{
		CustomerName:       strings.TrimSpace(in.CustomerName),
		CustomerIdentifier: strings.TrimSpace(in.CustomerIdentifier),
		Rating:             in.Rating,
		Comment:            strings.TrimSpace(in.Comment),
		Approved:           r.autoApprove,
	}
	switch {
	case rv.CustomerName == "":
		return nil, apperr.Invalid(op, "nome é obrigatório")
	case rv.CustomerIdentifier == "" || len(rv.CustomerIdentifier) > maxIdentifierLen:
		return nil, apperr.Invalid(op, "identificador inválido")
	case rv.Rating < 1 || rv.Rating > 5:
		return nil, apperr.Invalid(op, "nota deve ser de 1 a 5")
	case rv.Comment == "":
		return nil, apperr.Invalid(op, "comentário é obrigatório")
	case utf8.RuneCountInString(rv.Comment) > maxCommentLen:
		return nil, apperr.Invalid(op, "comentário muito longo")
	}

	if err := r.repo.Create(ctx, rv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.CodeDuplicateReview, op, err)
		}
		return nil, apperr.New(apperr.CodeInternalError, op, err)
	}
	r.log.Info("review created", zap.String("review_id", rv.ID.String()), zap.Bool("approved", rv.Approved))
	return rv, nil
}

// ListApproved — публичная лента, новые сначала.
func (r *Reviews) ListApproved(ctx context.Context, page, pageSize int) (calendar.Page[model.Review], error) {
	page, pageSize, offset := calendar.NormalizePage(page, pageSize)
	items, total, err := r.repo.ListApproved(ctx, pageSize, offset)
	if err != nil {
		return calendar.Page[model.Review]{}, apperr.New(apperr.CodeInternalError, "catalog.ListReviews", err)
	}
	return calendar.NewPage(items, page, pageSize, int(total)), nil
}

func (r *Reviews) ListAll(ctx context.Context) ([]model.Review, error) {
	out, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternalError, "catalog.ListAllReviews", err)
	}
	return out, nil
}

func (r *Reviews) Approve(ctx context.Context, id string) (*model.Review, error) {
	const op = "catalog.ApproveReview"

	reviewID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, apperr.Invalid(op, "avaliação inválida: %q", id)
	}
	rv, err := r.repo.Approve(ctx, reviewID)
	if err != nil {
		return nil, storeError(op, err)
	}
	return rv, nil
}

func (r *Reviews) Delete(ctx context.Context, id string) error {
	const op = "catalog.DeleteReview"

	reviewID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperr.Invalid(op, "avaliação inválida: %q", id)
	}
	if err := r.repo.Delete(ctx, reviewID); err != nil {
		return storeError(op, err)
	}
	return nil
}
