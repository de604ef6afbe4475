package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

func newEmployeeService(orders *fakeOrderRepo, periods *fakePeriodRepo) *EmployeeService {
	return NewEmployeeService(&fakeEmployeeRepo{}, orders, periods, logger.Discard())
}

func completedOrder(id string, assignee models.Assignee, items int, daysAgo int) models.Order {
	date := time.Now().UTC().AddDate(0, 0, -daysAgo)
	return models.Order{
		ID:             id,
		OrderNumber:    "HB-" + id,
		CompletedBy:    assignee,
		Completed:      true,
		CompletedDate:  &date,
		ItemsDigitized: items,
	}
}

func TestWorkQueueFiltersByAssignment(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.open = []models.Order{
		{ID: "rec1", AssignedTo: models.Assignee{ID: "emp1"}},
		{ID: "rec2", AssignedTo: models.Assignee{ID: "emp2"}},
		{ID: "rec3", AssignedTo: models.Assignee{Name: "Jamie Reed"}},
		{ID: "rec4"},
	}
	svc := newEmployeeService(repo, &fakePeriodRepo{})

	queue, err := svc.WorkQueue(context.Background(), "emp1", "jamie reed")
	require.NoError(t, err)

	require.Len(t, queue, 2)
	assert.Equal(t, "rec1", queue[0].ID)
	// Legacy name-only assignment matches case-insensitively.
	assert.Equal(t, "rec3", queue[1].ID)
}

func TestWorkQueueIDBeatsName(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.open = []models.Order{
		{ID: "rec1", AssignedTo: models.Assignee{ID: "emp2", Name: "Jamie Reed"}},
	}
	svc := newEmployeeService(repo, &fakePeriodRepo{})

	// The order carries emp2's id; a matching display name must not claim it.
	queue, err := svc.WorkQueue(context.Background(), "emp1", "Jamie Reed")
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestPaySummaryTotalsAndRecent(t *testing.T) {
	mine := models.Assignee{ID: "emp1"}
	repo := newFakeOrderRepo()
	repo.completed = []models.Order{
		completedOrder("a", mine, 10, 6),
		completedOrder("b", mine, 5, 1),
		completedOrder("c", models.Assignee{ID: "emp2"}, 50, 2),
		completedOrder("d", mine, 0, 3),
		completedOrder("e", mine, 20, 4),
		completedOrder("f", mine, 8, 5),
		completedOrder("g", mine, 2, 7),
	}
	svc := newEmployeeService(repo, &fakePeriodRepo{period: models.PayPeriod{Name: "August 2026"}})

	view, err := svc.PaySummary(context.Background(), "emp1", "")
	require.NoError(t, err)

	assert.Equal(t, 6, view.TotalOrders)
	assert.Equal(t, 45, view.TotalItems)
	// 6 completions: 6*7.50 base + 45*2.00 per item.
	assert.Equal(t, "135.00", view.TotalEarnings.StringFixed(2))
	assert.Equal(t, view.TotalEarnings.StringFixed(2), view.PeriodEarnings.StringFixed(2))
	assert.Equal(t, "August 2026", view.Period.Name)

	// Only the five most recent completions are detailed, newest first.
	require.Len(t, view.Recent, recentOrderCount)
	assert.Equal(t, "b", view.Recent[0].ID)
	assert.Equal(t, "d", view.Recent[1].ID)
	assert.Equal(t, "e", view.Recent[2].ID)
	assert.Equal(t, "f", view.Recent[3].ID)
	assert.Equal(t, "a", view.Recent[4].ID)
}

func TestPaySummaryPrefersStoredPay(t *testing.T) {
	mine := models.Assignee{ID: "emp1"}
	stored := completedOrder("a", mine, 10, 1)
	stored.Pay = models.Pay{
		Base:    decimalFromCents(750),
		PerItem: decimalFromCents(2000),
		Total:   decimalFromCents(9999), // deliberately off-formula
	}
	repo := newFakeOrderRepo()
	repo.completed = []models.Order{stored}
	svc := newEmployeeService(repo, &fakePeriodRepo{})

	view, err := svc.PaySummary(context.Background(), "emp1", "")
	require.NoError(t, err)
	assert.Equal(t, "99.99", view.TotalEarnings.StringFixed(2))
}

func TestPaySummaryFallsBackToCheckInAssignee(t *testing.T) {
	repo := newFakeOrderRepo()
	legacy := completedOrder("a", models.Assignee{}, 10, 1)
	legacy.AssignedTo = models.Assignee{Name: "Jamie Reed"}
	repo.completed = []models.Order{legacy}
	svc := newEmployeeService(repo, &fakePeriodRepo{})

	view, err := svc.PaySummary(context.Background(), "emp1", "Jamie Reed")
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalOrders)
}

func TestPaySummaryNoCurrentPeriod(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newEmployeeService(repo, &fakePeriodRepo{err: core.ErrNoCurrentPeriod})

	view, err := svc.PaySummary(context.Background(), "emp1", "")
	require.NoError(t, err)
	assert.Equal(t, core.DefaultPeriodName, view.Period.Name)
	assert.Zero(t, view.TotalOrders)
}

func TestOrderPayFallbackForLegacyRows(t *testing.T) {
	legacy := models.Order{ItemsDigitized: 20}
	assert.Equal(t, "47.50", OrderPay(legacy).Total.StringFixed(2))
}
