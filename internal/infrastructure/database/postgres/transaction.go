package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type Transaction struct {
	tx     pgx.Tx
	closed bool
}

type TransactionManager struct {
	client *Client
}

type TxFunc func(tx *Transaction) error

func NewTransactionManager(client *Client) *TransactionManager {
	return &TransactionManager{
		client: client,
	}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn TxFunc) error {
	return tm.WithTransactionIsolation(ctx, pgx.TxIsoLevel(""), fn)
}

func (tm *TransactionManager) WithTransactionIsolation(ctx context.Context, isoLevel pgx.TxIsoLevel, fn TxFunc) error {
	if tm.client.pool == nil {
		return fmt.Errorf("database pool is nil")
	}

	conn, err := tm.client.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for transaction: %w", err)
	}
	defer conn.Release()

	// Options de transaction avec niveau d'isolation
	txOptions := pgx.TxOptions{}
	if isoLevel != "" {
		txOptions.IsoLevel = isoLevel
	}

	pgxTx, err := conn.BeginTx(ctx, txOptions)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Transaction{
		tx:     pgxTx,
		closed: false,
	}

	// Rollback automatique en cas d'erreur avec defer
	defer func() {
		if !tx.closed {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				// Log de l'erreur de rollback mais ne pas masquer l'erreur originale
				fmt.Printf("Warning: failed to rollback transaction: %v\n", rollbackErr)
			}
		}
	}()

	// Exécuter la fonction dans la transaction
	if err := fn(tx); err != nil {
		return err
	}

	// Commit si tout s'est bien passé
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (t *Transaction) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if t.closed {
		return nil, fmt.Errorf("transaction is closed")
	}
	return t.tx.Query(ctx, sql, args...)
}

func (t *Transaction) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	// QueryRow ne peut pas retourner d'erreur directement,
	// mais l'erreur sera disponible lors du Scan
	if t.closed {
		// Retourner un row qui génèrera une erreur lors du scan
		return &closedTxRow{err: fmt.Errorf("transaction is closed")}
	}
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *Transaction) Exec(ctx context.Context, sql string, args ...interface{}) error {
	if t.closed {
		return fmt.Errorf("transaction is closed")
	}
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *Transaction) Commit(ctx context.Context) error {
	if t.closed {
		return fmt.Errorf("transaction is already closed")
	}

	err := t.tx.Commit(ctx)
	t.closed = true
	return err
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.closed {
		return nil // Déjà fermée, pas d'erreur
	}

	err := t.tx.Rollback(ctx)
	t.closed = true
	return err
}

func (t *Transaction) IsClosed() bool {
	return t.closed
}

// Type pour gérer le cas où QueryRow est appelé sur une transaction fermée
type closedTxRow struct {
	err error
}

func (r *closedTxRow) Scan(dest ...interface{}) error {
	return r.err
}
