package usecase

import (
	"context"
	"time"

	"salesman/domain"

	"github.com/google/uuid"
)

type salesmanUC struct {
	salesmanRepo domain.SalesmanRepo
	TimeOut      time.Duration
}

func NewSalesmanUseCase(repo domain.SalesmanRepo, timeOut time.Duration) domain.SalesmanUseCase {
	return &salesmanUC{
		salesmanRepo: repo,
		TimeOut:      timeOut,
	}
}

func (sUC *salesmanUC) Create(ctx context.Context, data *domain.SalesmanData) (*domain.Salesman, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	if err := sUC.checkUniqueConstraints(ctx, data, ""); err != nil {
		return nil, err
	}

	salesman := &domain.Salesman{ID: uuid.NewString()}
	data.ApplyTo(salesman)

	if err := sUC.salesmanRepo.Create(ctx, salesman); err != nil {
		return nil, err
	}
	return salesman, nil
}

func (sUC *salesmanUC) Update(ctx context.Context, id string, data *domain.SalesmanData) (*domain.Salesman, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	salesman, err := sUC.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sUC.checkUniqueConstraints(ctx, data, id); err != nil {
		return nil, err
	}

	data.ApplyTo(salesman)

	if err := sUC.salesmanRepo.Update(ctx, salesman); err != nil {
		return nil, err
	}
	return salesman, nil
}

func (sUC *salesmanUC) FindByID(ctx context.Context, id string) (*domain.Salesman, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	return sUC.findByID(ctx, id)
}

func (sUC *salesmanUC) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	salesman, err := sUC.findByID(ctx, id)
	if err != nil {
		return false, err
	}

	return sUC.salesmanRepo.Delete(ctx, salesman.ID)
}

func (sUC *salesmanUC) Paginate(ctx context.Context, query domain.ListQuery) (*domain.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	return sUC.salesmanRepo.Paginate(ctx, query)
}

func (sUC *salesmanUC) GetAll(ctx context.Context, filters domain.ListFilters) ([]domain.Salesman, error) {
	ctx, cancel := context.WithTimeout(ctx, sUC.TimeOut)
	defer cancel()

	return sUC.salesmanRepo.GetAll(ctx, filters)
}

func (sUC *salesmanUC) findByID(ctx context.Context, id string) (*domain.Salesman, error) {
	salesman, err := sUC.salesmanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if salesman == nil {
		return nil, &domain.NotFoundError{ID: id}
	}
	return salesman, nil
}

// checkUniqueConstraints is the advisory fast path; the table's unique
// indexes remain the authority under concurrent writers.
func (sUC *salesmanUC) checkUniqueConstraints(ctx context.Context, data *domain.SalesmanData, excludeID string) error {
	exists, err := sUC.salesmanRepo.ExistsByProsightID(ctx, data.ProsightID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return &domain.AlreadyExistsError{Field: "prosight_id", Value: data.ProsightID}
	}

	exists, err = sUC.salesmanRepo.ExistsByEmail(ctx, data.Email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return &domain.AlreadyExistsError{Field: "email", Value: data.Email}
	}

	return nil
}
