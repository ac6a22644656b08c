package repositories

import (
	"context"

	"botpanel-backend/internal/apierror"
	"botpanel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BankRepository struct {
	DB *pgxpool.Pool
}

func NewBankRepository(db *pgxpool.Pool) *BankRepository {
	return &BankRepository{DB: db}
}

const bankColumns = `id, telefonocaso, banco, titular, cedula, numerocuenta, tipocuenta, habilitado, created_at`

func scanBank(row interface{ Scan(...interface{}) error }) (*models.Bank, error) {
	var b models.Bank
	err := row.Scan(&b.ID, &b.TelefonoCaso, &b.Banco, &b.Titular, &b.Cedula,
		&b.NumeroCuenta, &b.TipoCuenta, &b.Habilitado, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns banks visible in the scope.
func (r *BankRepository) List(ctx context.Context, scope models.Scope) ([]*models.Bank, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+bankColumns+` FROM bancosdv0
		 WHERE ($1 OR ($2 <> '' AND telefonocaso = $2))
		 ORDER BY id`,
		scope.All, scope.Telefono)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []*models.Bank
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

// bankConflict maps the per-tenant account number index to its message.
func bankConflict(err error) error {
	if _, ok := uniqueViolation(err); ok {
		return apierror.Conflict("El numero de cuenta ya esta registrado")
	}
	return err
}

func (r *BankRepository) Create(ctx context.Context, b *models.Bank) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO bancosdv0(telefonocaso, banco, titular, cedula, numerocuenta, tipocuenta, habilitado)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		b.TelefonoCaso, b.Banco, b.Titular, b.Cedula, b.NumeroCuenta, b.TipoCuenta, b.Habilitado,
	).Scan(&b.ID, &b.CreatedAt)
	return bankConflict(err)
}

// Update replaces the editable fields within the scope.
func (r *BankRepository) Update(ctx context.Context, scope models.Scope, b *models.Bank) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bancosdv0 SET banco=$4, titular=$5, cedula=$6, numerocuenta=$7, tipocuenta=$8, habilitado=$9
		 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, b.ID,
		b.Banco, b.Titular, b.Cedula, b.NumeroCuenta, b.TipoCuenta, b.Habilitado)
	if err != nil {
		return bankConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}

// Delete removes a bank within the scope.
func (r *BankRepository) Delete(ctx context.Context, scope models.Scope, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM bancosdv0 WHERE id = $3 AND ($1 OR ($2 <> '' AND telefonocaso = $2))`,
		scope.All, scope.Telefono, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("No encontrado")
	}
	return nil
}
