package store

import (
	"context"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

type PayPeriodRepo struct {
	client *Client
}

func NewPayPeriodRepo(client *Client) *PayPeriodRepo {
	return &PayPeriodRepo{client: client}
}

// Current resolves the open pay period: most recent by start date among the
// periods not yet marked Paid.
func (pr *PayPeriodRepo) Current(ctx context.Context) (models.PayPeriod, error) {
	recs, err := pr.client.ListRecords(ctx, tablePayPeriods, ListOptions{
		Formula:    "NOT(" + fieldEquals(fldPeriodStatus, core.PayPeriodStatusPaid) + ")",
		MaxRecords: 1,
		Sort:       []Sort{{Field: fldPeriodStart, Direction: "desc"}},
	})
	if err != nil {
		return models.PayPeriod{}, err
	}
	if len(recs) == 0 {
		return models.PayPeriod{}, core.ErrNoCurrentPeriod
	}

	rec := recs[0]
	period := models.PayPeriod{
		ID:     rec.ID,
		Name:   rec.str(fldPeriodName),
		Status: rec.str(fldPeriodStatus),
	}
	if t := rec.date(fldPeriodStart); t != nil {
		period.StartDate = *t
	}
	return period, nil
}
