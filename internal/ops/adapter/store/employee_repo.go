package store

import (
	"context"
	"errors"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/domain/models"
)

type EmployeeRepo struct {
	client *Client
}

func NewEmployeeRepo(client *Client) *EmployeeRepo {
	return &EmployeeRepo{client: client}
}

func (er *EmployeeRepo) ListActive(ctx context.Context) ([]models.Employee, error) {
	recs, err := er.client.ListRecords(ctx, tableEmployees, ListOptions{
		Sort: []Sort{{Field: fldEmployeeName, Direction: "asc"}},
	})
	if err != nil {
		return nil, err
	}

	employees := make([]models.Employee, 0, len(recs))
	for _, rec := range recs {
		emp := mapEmployee(rec)
		if !emp.Active {
			continue
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func (er *EmployeeRepo) GetByID(ctx context.Context, id string) (models.Employee, error) {
	rec, err := er.client.GetRecord(ctx, tableEmployees, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return models.Employee{}, core.ErrEmployeeNotFound
		}
		return models.Employee{}, err
	}
	return mapEmployee(rec), nil
}

func mapEmployee(rec Record) models.Employee {
	// A missing Active flag means active; only an explicit false deactivates.
	active := true
	if v, ok := rec.Fields[fldEmployeeActive].(bool); ok {
		active = v
	}
	return models.Employee{
		ID:     rec.ID,
		Name:   rec.str(fldEmployeeName),
		Active: active,
	}
}
