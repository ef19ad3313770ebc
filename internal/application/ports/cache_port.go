package ports

import (
	"context"
	"time"
)

// Cache puerto de caché clave/valor. Los adaptadores deben degradar sin error cuando el backend
// no está disponible: GetJSON devuelve (false, nil) y las escrituras se ignoran.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// AcquireLock toma un candado con ttl. Devuelve false si otro lo tiene y, si lo concede,
	// el token que identifica a esta ejecución. Sin backend devuelve true y token vacío.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// ReleaseLock libera key solo si todavía guarda token.
	ReleaseLock(ctx context.Context, key, token string) error
	Available(ctx context.Context) bool
}

// ProgressKey clave del tablero de avance cacheado de un proyecto.
func ProgressKey(projectID string) string { return "xurp:progress:" + projectID }

// AssignLockKey clave del candado de asignación diaria de un proyecto.
func AssignLockKey(projectID string) string { return "xurp:lock:assign-daily:" + projectID }
