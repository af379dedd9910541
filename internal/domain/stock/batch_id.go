package stock

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Valores por defecto del asignador: 36 símbolos, 4 caracteres (36^4 = 1.679.616 combinaciones).
const (
	DefaultBatchAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultBatchMaxAttempts = 1000
)

// BatchIDChecker consulta si un batch_id ya está en uso (normalmente StockInRepository).
type BatchIDChecker interface {
	ExistsBatchID(ctx context.Context, batchID string) (bool, error)
}

// BatchIDAllocator genera identificadores cortos de lote, únicos contra el ledger.
// Es seguro para uso concurrente; la unicidad final la garantiza el índice único al insertar.
type BatchIDAllocator struct {
	alphabet    string
	length      int
	maxAttempts int
	intn        func(n int) int
}

// AllocatorOption personaliza el asignador (útil en tests para forzar colisiones).
type AllocatorOption func(*BatchIDAllocator)

// WithAlphabet cambia el alfabeto de símbolos.
func WithAlphabet(alphabet string) AllocatorOption {
	return func(a *BatchIDAllocator) {
		if alphabet != "" {
			a.alphabet = alphabet
		}
	}
}

// WithMaxAttempts acota el número de intentos antes de ErrBatchIDExhausted.
func WithMaxAttempts(n int) AllocatorOption {
	return func(a *BatchIDAllocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithRandom inyecta la fuente aleatoria: intn(n) debe devolver un entero en [0, n).
func WithRandom(intn func(n int) int) AllocatorOption {
	return func(a *BatchIDAllocator) {
		if intn != nil {
			a.intn = intn
		}
	}
}

// NewBatchIDAllocator construye el asignador con los valores por defecto.
func NewBatchIDAllocator(opts ...AllocatorOption) *BatchIDAllocator {
	a := &BatchIDAllocator{
		alphabet:    DefaultBatchAlphabet,
		length:      entity.BatchIDLength,
		maxAttempts: DefaultBatchMaxAttempts,
		intn:        rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate devuelve un batch_id que no existe según checker.
// Tras maxAttempts colisiones devuelve domain.ErrBatchIDExhausted.
func (a *BatchIDAllocator) Generate(ctx context.Context, checker BatchIDChecker) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := a.candidate()
		exists, err := checker.ExistsBatchID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("verificar batch_id: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w tras %d intentos", domain.ErrBatchIDExhausted, a.maxAttempts)
}

// Resolve decide el batch_id final de una entrada: si requested está vacío o ya existe,
// se reemplaza silenciosamente por uno generado.
func (a *BatchIDAllocator) Resolve(ctx context.Context, checker BatchIDChecker, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return a.Generate(ctx, checker)
	}
	exists, err := checker.ExistsBatchID(ctx, requested)
	if err != nil {
		return "", fmt.Errorf("verificar batch_id: %w", err)
	}
	if exists {
		return a.Generate(ctx, checker)
	}
	return requested, nil
}

func (a *BatchIDAllocator) candidate() string {
	var b strings.Builder
	b.Grow(a.length)
	for i := 0; i < a.length; i++ {
		b.WriteByte(a.alphabet[a.intn(len(a.alphabet))])
	}
	return b.String()
}

// ValidateBatchID comprueba que un batch_id explícito cabe en la columna (máx. 4 caracteres).
func ValidateBatchID(batchID string) error {
	if utf8.RuneCountInString(strings.TrimSpace(batchID)) > entity.BatchIDLength {
		return domain.NewValidationError("batch_id",
			fmt.Sprintf("batch_id must have at most %d characters: %q", entity.BatchIDLength, batchID))
	}
	return nil
}
